// Package config loads the on-disk rule-set and search-tuning file used by
// cmd/tetrisbot and cmd/trainer, ahead of (and independent from) whatever a
// given protocol session's start message later overrides (spec.md §6
// EXPANSION).
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tetrisbot/tetrisbot/internal/engine"
)

// File is the on-disk YAML shape; string fields mirror the protocol's enum
// names so one config can serve both a local run and a start message.
type File struct {
	Kicks               string  `yaml:"kicks"`
	Spins               string  `yaml:"spins"`
	B2BCharging         bool    `yaml:"b2bCharging"`
	B2BChargeAt         int     `yaml:"b2bChargeAt"`
	B2BChargeBase       int     `yaml:"b2bChargeBase"`
	B2BChaining         bool    `yaml:"b2bChaining"`
	ComboTable          string  `yaml:"comboTable"`
	GarbageMultiplier   float64 `yaml:"garbageMultiplier"`
	PCB2B               int     `yaml:"pcB2b"`
	PCSend              int     `yaml:"pcSend"`
	GarbageSpecialBonus bool    `yaml:"garbageSpecialBonus"`

	Weights *WeightsFile `yaml:"weights"`
}

// WeightsFile mirrors engine.Weights for YAML decoding.
type WeightsFile struct {
	Height             int `yaml:"height"`
	UpperHalfHeight    int `yaml:"upperHalfHeight"`
	UpperQuarterHeight int `yaml:"upperQuarterHeight"`
	CenterHeight       int `yaml:"centerHeight"`
	ClearNone          int `yaml:"clearNone"`
	ClearMini          int `yaml:"clearMini"`
	ClearNormal        int `yaml:"clearNormal"`
	Sent               int `yaml:"sent"`
	B2B                int `yaml:"b2b"`
	Combo              int `yaml:"combo"`
	Holes              int `yaml:"holes"`
	CoveredHoles       int `yaml:"coveredHoles"`
	OverstackedHoles   int `yaml:"overstackedHoles"`
	Unevenness         int `yaml:"unevenness"`
	Wells              int `yaml:"wells"`
}

// Load reads and parses a YAML config file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, errors.Wrap(err, "read config file")
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, errors.Wrap(err, "parse config file")
	}
	return f, nil
}

// EngineConfig resolves f's string-named enum fields against the engine
// package, falling back to engine.DefaultConfig's choice for anything
// unset or unrecognized.
func (f File) EngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	if k, ok := engine.KickFamilyFromString(f.Kicks); ok {
		cfg.Kicks = k
	}
	if s, ok := engine.SpinPolicyFromString(f.Spins); ok {
		cfg.Spins = s
	}
	if t, ok := engine.ComboTableFromString(f.ComboTable); ok {
		cfg.ComboTable = t
	}
	cfg.B2BCharging = f.B2BCharging
	cfg.B2BChargeAt = f.B2BChargeAt
	cfg.B2BChargeBase = f.B2BChargeBase
	cfg.B2BChaining = f.B2BChaining
	cfg.PCB2B = f.PCB2B
	cfg.PCSend = f.PCSend
	cfg.GarbageSpecialBonus = f.GarbageSpecialBonus
	if f.GarbageMultiplier != 0 {
		cfg.GarbageMultiplier = f.GarbageMultiplier
	}
	return cfg
}

// EngineWeights returns engine.DefaultWeights if no weights block was
// present. A present block replaces the defaults as a whole: every field is
// taken from it, and a field the block omits is zero.
func (f File) EngineWeights() engine.Weights {
	w := engine.DefaultWeights()
	if f.Weights == nil {
		return w
	}
	wf := *f.Weights
	return engine.Weights{
		Height:             wf.Height,
		UpperHalfHeight:    wf.UpperHalfHeight,
		UpperQuarterHeight: wf.UpperQuarterHeight,
		CenterHeight:       wf.CenterHeight,
		ClearNone:          wf.ClearNone,
		ClearMini:          wf.ClearMini,
		ClearNormal:        wf.ClearNormal,
		Sent:               wf.Sent,
		B2B:                wf.B2B,
		Combo:              wf.Combo,
		Holes:              wf.Holes,
		CoveredHoles:       wf.CoveredHoles,
		OverstackedHoles:   wf.OverstackedHoles,
		Unevenness:         wf.Unevenness,
		Wells:              wf.Wells,
	}
}
