package protocol

import (
	"bufio"
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/tetrisbot/tetrisbot/internal/bag"
	"github.com/tetrisbot/tetrisbot/internal/engine"
)

// engineVersion is reported in the init message.
const engineVersion = "1.0.0"

// previewLen is how many pieces of lookahead a GameState carries, mirroring
// the source's get_front_16 window.
const previewLen = 16

// bagBufferSize is the 7-bag randomizer's internal refill threshold,
// distinct from previewLen (spec.md §9; see DESIGN.md on the two different
// "how many pieces ahead" numbers in play).
const bagBufferSize = 32

// Host runs the newline-delimited JSON protocol loop of spec.md §6: it
// reads Incoming messages from r and writes Outgoing replies to w, driving
// one engine.GameState across Start/Step/InsertGarbage messages.
type Host struct {
	r      *bufio.Scanner
	w      io.Writer
	logger engine.SearchLogger
	weights engine.Weights

	defaultCfg *engine.Config

	// OnStep, if set, is called after each step message has been fully
	// applied to the live game — a hook for an optional spectator view
	// (cmd/tetrisbot -render), not used by the protocol loop itself.
	OnStep func(*engine.GameState)

	game       *engine.GameState
	configured bool
}

// State returns the Host's live game state, or nil before a start message
// has configured one.
func (h *Host) State() *engine.GameState {
	return h.game
}

// NewHost wires a Host to the given streams, typically os.Stdin/os.Stdout.
func NewHost(r io.Reader, w io.Writer, logger engine.SearchLogger) *Host {
	if logger == nil {
		logger = engine.NulSearchLogger{}
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Host{r: scanner, w: w, logger: logger, weights: engine.DefaultWeights()}
}

// SetDefaults installs a fallback rule config and the heuristic weights,
// typically loaded from a local config file. A start message keeps its own
// recognized Kicks/Spins/ComboTable values and takes cfg's for any it leaves
// unset or unrecognized; the weights apply to every search.
func (h *Host) SetDefaults(cfg engine.Config, weights engine.Weights) {
	h.defaultCfg = &cfg
	h.weights = weights
}

func (h *Host) send(msg Outgoing) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal outgoing message")
	}
	if _, err := h.w.Write(data); err != nil {
		return errors.Wrap(err, "write outgoing message")
	}
	_, err = h.w.Write([]byte("\n"))
	return err
}

// Run reads and dispatches messages until the input stream is exhausted or
// a fatal error occurs, after sending the initial init message.
func (h *Host) Run() error {
	if err := h.send(Outgoing{Type: "init", Version: engineVersion}); err != nil {
		return err
	}

	for h.r.Scan() {
		line := h.r.Bytes()
		if len(line) == 0 {
			continue
		}
		var msg Incoming
		if err := json.Unmarshal(line, &msg); err != nil {
			if sendErr := h.send(Outgoing{Type: "crash", Reason: "malformed JSON: " + err.Error()}); sendErr != nil {
				return sendErr
			}
			continue
		}

		var err error
		switch msg.Type {
		case "start":
			err = h.handleStart(msg)
		case "insert_garbage":
			err = h.handleInsertGarbage(msg)
		case "step":
			err = h.handleStep(msg)
		default:
			err = h.send(Outgoing{Type: "crash", Reason: "unknown message type: " + msg.Type})
		}
		if err != nil {
			return err
		}
	}
	return h.r.Err()
}

func (h *Host) handleStart(msg Incoming) error {
	cfg := msg.Config.ToEngineConfig()
	if h.defaultCfg != nil {
		if _, ok := engine.KickFamilyFromString(msg.Config.Kicks); !ok {
			cfg.Kicks = h.defaultCfg.Kicks
		}
		if _, ok := engine.SpinPolicyFromString(msg.Config.Spins); !ok {
			cfg.Spins = h.defaultCfg.Spins
		}
		if _, ok := engine.ComboTableFromString(msg.Config.ComboTable); !ok {
			cfg.ComboTable = h.defaultCfg.ComboTable
		}
	}
	q := bag.NewBag(msg.Seed, bagBufferSize, nil)
	h.game = engine.NewGameState(cfg, q, previewLen)
	h.configured = true
	return nil
}

func (h *Host) handleInsertGarbage(msg Incoming) error {
	if !h.configured {
		return h.send(Outgoing{Type: "crash", Reason: "insert_garbage requested without configuring (start message was never sent)."})
	}
	for _, g := range msg.Garbage {
		h.game.AddGarbage(g.Amount, g.Column, g.Time)
	}
	return nil
}

func (h *Host) handleStep(msg Incoming) error {
	if !h.configured {
		return h.send(Outgoing{Type: "crash", Reason: "step requested without configuring (start message was never sent)."})
	}
	h.game.Garbage = h.game.Garbage[:0]
	for _, g := range msg.Garbage {
		h.game.AddGarbage(g.Amount, g.Column, g.Time)
	}

	start := time.Now()
	placement, usedHold, found := engine.BeamSearch(h.game, h.weights, engine.BeamWidth, engine.BeamDepth, h.logger)
	elapsed := time.Since(start).Seconds()

	var keys []engine.Move
	if found {
		shape := h.game.Piece.Shape
		if usedHold {
			if h.game.Hold != nil {
				shape = *h.game.Hold
			} else if h.game.HasNextPiece() {
				shape = h.game.Preview[0]
			}
		}
		cf := engine.BuildCollisionField(h.game.Board, shape)
		if path, ok := engine.FindKeys(h.game.Board, cf, h.game.Config.Kicks, shape, h.game.Config.Spins, engine.Spawn(shape), placement); ok {
			keys = path
		} else {
			keys = []engine.Move{engine.MoveHardDrop}
		}
		if usedHold {
			keys = append([]engine.Move{engine.MoveHold}, keys...)
		}
	} else {
		keys = []engine.Move{engine.MoveHardDrop}
	}

	for _, mv := range keys {
		h.applyMove(mv)
	}
	h.logger.KeyPathFound(len(keys))
	if h.OnStep != nil {
		h.OnStep(h.game)
	}

	return h.send(Outgoing{Type: "result", Keys: keys, Stats: &Stats{TimeSeconds: elapsed}})
}

// applyMove drives one key of a reconstructed path against the live game,
// mirroring key.run(&mut game, &config) in the source.
func (h *Host) applyMove(mv engine.Move) {
	switch mv {
	case engine.MoveLeft:
		h.game.MoveLeft()
	case engine.MoveRight:
		h.game.MoveRight()
	case engine.MoveSoftDrop:
		h.game.SoftDrop()
	case engine.MoveDasLeft:
		h.game.DasLeft()
	case engine.MoveDasRight:
		h.game.DasRight()
	case engine.MoveCCW:
		h.game.Rotate(3)
	case engine.MoveCW:
		h.game.Rotate(1)
	case engine.MoveFlip:
		h.game.Rotate(2)
	case engine.MoveHold:
		h.game.HoldSwap()
	case engine.MoveHardDrop:
		h.game.HardDrop()
	}
}
