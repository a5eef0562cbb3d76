package protocol

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/tetrisbot/tetrisbot/internal/engine"
)

func readLines(t *testing.T, r *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("unmarshal output line %q: %v", sc.Text(), err)
		}
		lines = append(lines, m)
	}
	return lines
}

func TestHostSendsInitOnRun(t *testing.T) {
	var out bytes.Buffer
	h := NewHost(strings.NewReader(""), &out, nil)
	if err := h.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := readLines(t, &out)
	if len(lines) != 1 || lines[0]["type"] != "init" {
		t.Fatalf("expected exactly one init message, got %+v", lines)
	}
}

func TestHostRejectsMalformedJSON(t *testing.T) {
	var out bytes.Buffer
	h := NewHost(strings.NewReader("not json at all\n"), &out, nil)
	if err := h.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := readLines(t, &out)
	if len(lines) != 2 || lines[1]["type"] != "crash" {
		t.Fatalf("expected an init then a crash message, got %+v", lines)
	}
}

func TestHostRejectsUnknownMessageType(t *testing.T) {
	var out bytes.Buffer
	h := NewHost(strings.NewReader(`{"type":"bogus"}`+"\n"), &out, nil)
	if err := h.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := readLines(t, &out)
	if len(lines) != 2 || lines[1]["type"] != "crash" {
		t.Fatalf("expected an init then a crash message, got %+v", lines)
	}
}

func TestHostStepBeforeStartCrashes(t *testing.T) {
	var out bytes.Buffer
	h := NewHost(strings.NewReader(`{"type":"step"}`+"\n"), &out, nil)
	if err := h.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := readLines(t, &out)
	if len(lines) != 2 || lines[1]["type"] != "crash" {
		t.Fatalf("expected an init then a crash message, got %+v", lines)
	}
}

func TestHostStartThenStepProducesAPlacement(t *testing.T) {
	var out bytes.Buffer
	input := `{"type":"start","seed":1,"config":{}}` + "\n" + `{"type":"step","garbage":[]}` + "\n"
	h := NewHost(strings.NewReader(input), &out, nil)
	if err := h.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := readLines(t, &out)
	if len(lines) != 2 {
		t.Fatalf("expected init + result, got %d lines: %+v", len(lines), lines)
	}
	if lines[1]["type"] != "result" {
		t.Fatalf("expected a result message, got %+v", lines[1])
	}
	keys, ok := lines[1]["keys"].([]interface{})
	if !ok || len(keys) == 0 {
		t.Fatalf("expected at least one key in the result, got %+v", lines[1]["keys"])
	}
	if keys[len(keys)-1] != "hardDrop" {
		t.Errorf("the last key of a result must be a hard drop, got %v", keys[len(keys)-1])
	}
	if h.State() == nil {
		t.Fatal("State() should return the live game after a start message")
	}
}

func TestHostInsertGarbageBeforeStartCrashes(t *testing.T) {
	var out bytes.Buffer
	h := NewHost(strings.NewReader(`{"type":"insert_garbage","garbage":[{"amt":1,"col":0,"time":0}]}`+"\n"), &out, nil)
	if err := h.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := readLines(t, &out)
	if len(lines) != 2 || lines[1]["type"] != "crash" {
		t.Fatalf("expected an init then a crash message, got %+v", lines)
	}
}

func TestHostInsertGarbageQueuesEntry(t *testing.T) {
	var out bytes.Buffer
	input := `{"type":"start","seed":1,"config":{}}` + "\n" +
		`{"type":"insert_garbage","garbage":[{"amt":3,"col":2,"time":5}]}` + "\n"
	h := NewHost(strings.NewReader(input), &out, nil)
	if err := h.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	state := h.State()
	if state == nil {
		t.Fatal("expected a live game state after start")
	}
	if len(state.Garbage) != 1 || state.Garbage[0].Amount != 3 || state.Garbage[0].HoleColumn != 2 || state.Garbage[0].TurnsRemaining != 5 {
		t.Errorf("garbage not queued as expected: %+v", state.Garbage)
	}
}

func TestHostSetDefaultsAppliesUnrecognizedEnumFallback(t *testing.T) {
	var out bytes.Buffer
	h := NewHost(strings.NewReader(""), &out, nil)
	customCfg := engine.DefaultConfig()
	customCfg.Kicks = engine.KickSRS
	h.SetDefaults(customCfg, engine.DefaultWeights())

	input := `{"type":"start","seed":1,"config":{"kicks":"not-a-real-kick-family"}}` + "\n"
	h2 := NewHost(strings.NewReader(input), &out, nil)
	h2.SetDefaults(customCfg, engine.DefaultWeights())
	if err := h2.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h2.State().Config.Kicks != engine.KickSRS {
		t.Errorf("expected the configured default (SRS) to apply when the host sends an unrecognized kick family, got %v", h2.State().Config.Kicks)
	}
}
