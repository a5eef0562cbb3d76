// Package protocol implements the newline-delimited JSON host protocol
// (spec.md §6): a Start message configures one game, Step requests a move
// for the current piece, and InsertGarbage queues incoming damage.
package protocol

import "github.com/tetrisbot/tetrisbot/internal/engine"

// GarbageChunk is one pending incoming-garbage entry as the host reports it
// (spec.md §6's {col, amt, time}).
type GarbageChunk struct {
	Amount int `json:"amt"`
	Column int `json:"col"`
	Time   int `json:"time"`
}

// ConfigMessage is the rule-set payload nested in a Start message, using
// the host-facing string names for the enum fields (spec.md §6).
type ConfigMessage struct {
	Kicks               string  `json:"kicks"`
	Spins               string  `json:"spins"`
	B2BCharging         bool    `json:"b2bCharging"`
	B2BChargeAt         int     `json:"b2bChargeAt"`
	B2BChargeBase       int     `json:"b2bChargeBase"`
	B2BChaining         bool    `json:"b2bChaining"`
	ComboTable          string  `json:"comboTable"`
	GarbageMultiplier   float64 `json:"garbageMultiplier"`
	PCB2B               int     `json:"pcB2b"`
	PCSend              int     `json:"pcSend"`
	GarbageSpecialBonus bool    `json:"garbageSpecialBonus"`
}

// ToEngineConfig resolves the string-named enum fields against the engine
// package's parsers, falling back to DefaultConfig's choice for anything
// unrecognized rather than rejecting the whole message.
func (c ConfigMessage) ToEngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	if k, ok := engine.KickFamilyFromString(c.Kicks); ok {
		cfg.Kicks = k
	}
	if s, ok := engine.SpinPolicyFromString(c.Spins); ok {
		cfg.Spins = s
	}
	if t, ok := engine.ComboTableFromString(c.ComboTable); ok {
		cfg.ComboTable = t
	}
	cfg.B2BCharging = c.B2BCharging
	cfg.B2BChargeAt = c.B2BChargeAt
	cfg.B2BChargeBase = c.B2BChargeBase
	cfg.B2BChaining = c.B2BChaining
	cfg.PCB2B = c.PCB2B
	cfg.PCSend = c.PCSend
	cfg.GarbageSpecialBonus = c.GarbageSpecialBonus
	if c.GarbageMultiplier != 0 {
		cfg.GarbageMultiplier = c.GarbageMultiplier
	}
	return cfg
}

// Incoming is the envelope every inbound message is decoded into; Type
// selects which of the three payloads below to read.
type Incoming struct {
	Type string `json:"type"`

	// start
	Config ConfigMessage `json:"config"`
	Seed   uint64        `json:"seed"`
	Bag    string        `json:"bag"`

	// insert_garbage / step
	Garbage []GarbageChunk `json:"garbage"`
}

// Stats reports search diagnostics alongside a result.
type Stats struct {
	TimeSeconds float64 `json:"time"`
}

// Outgoing is one of the three host-facing reply shapes (spec.md §6).
type Outgoing struct {
	Type string `json:"type"`

	// init
	Version string `json:"version,omitempty"`

	// result
	Keys  []engine.Move `json:"keys,omitempty"`
	Stats *Stats        `json:"stats,omitempty"`

	// crash
	Reason string `json:"reason,omitempty"`
}
