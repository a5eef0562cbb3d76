package engine

import (
	"math"
	"math/rand"
)

// Weights are the board-heuristic coefficients of spec.md §4.8. All terms
// are summed over ×1000-scaled integer inputs, matching the internal
// integer scaling the hand-tuned defaults were fit against.
type Weights struct {
	Height            int
	UpperHalfHeight   int
	UpperQuarterHeight int
	CenterHeight      int
	ClearNone         int
	ClearMini         int
	ClearNormal       int
	Sent              int
	B2B               int
	Combo             int
	Holes             int
	CoveredHoles      int
	OverstackedHoles  int
	Unevenness        int
	Wells             int
}

// DefaultWeights mirrors the hand-tuned defaults of the original evaluator
// (original_source/src/search/eval.rs WEIGHTS_HANDTUNED), extended with
// terms for the two board features (overstacked holes, wells) the original
// weight table left implicit at zero.
func DefaultWeights() Weights {
	return Weights{
		Height:             -50,
		UpperHalfHeight:    -150,
		UpperQuarterHeight: -300,
		CenterHeight:       -100,
		ClearNone:          -5,
		ClearMini:          5,
		ClearNormal:        10,
		Sent:               0,
		B2B:                30,
		Combo:              10,
		Holes:              -13,
		CoveredHoles:       -30,
		OverstackedHoles:   -10,
		Unevenness:         -3,
		Wells:              0,
	}
}

// Mutate returns a copy of w with each field, independently with
// probability rate, perturbed by a uniformly random integer offset in
// [-amount, amount] — the trainer's breeding step (spec.md §5,
// original_source/src/trainer.rs's Weights::mutate).
func (w Weights) Mutate(rng *rand.Rand, rate float64, amount int) Weights {
	m := func(v int) int {
		if rng.Float64() >= rate {
			return v
		}
		return v + rng.Intn(2*amount+1) - amount
	}
	return Weights{
		Height:             m(w.Height),
		UpperHalfHeight:    m(w.UpperHalfHeight),
		UpperQuarterHeight: m(w.UpperQuarterHeight),
		CenterHeight:       m(w.CenterHeight),
		ClearNone:          m(w.ClearNone),
		ClearMini:          m(w.ClearMini),
		ClearNormal:        m(w.ClearNormal),
		Sent:               m(w.Sent),
		B2B:                m(w.B2B),
		Combo:              m(w.Combo),
		Holes:              m(w.Holes),
		CoveredHoles:       m(w.CoveredHoles),
		OverstackedHoles:   m(w.OverstackedHoles),
		Unevenness:         m(w.Unevenness),
		Wells:              m(w.Wells),
	}
}

// BoardScore evaluates the board-shape and chain-counter terms of spec.md
// §4.8's heuristic against b's *current* state: b is whatever board a search
// branch has reached after all of its plies so far, and b2b/combo are that
// branch's live chain counters. It is called once per search node, against
// the cumulative board, never summed across plies (a board already reflects
// every prior drop on that branch). The result is scaled ×1000 like the rest
// of the internal scoring pipeline.
func BoardScore(b *Board, b2b, combo int16, w Weights) int {
	const h = VisibleHeight
	score := 0
	score += w.Height * (b.MaxHeight() * 1000 / h)
	score += w.UpperHalfHeight * (b.UpperHalfHeight(h) * 1000 / (h / 2))
	score += w.UpperQuarterHeight * (b.UpperQuarterHeight(h) * 1000 / (h / 4))
	score += w.CenterHeight * (b.CenterHeight() * 1000 / h)
	score += w.Holes * b.Holes() * 1000
	score += w.CoveredHoles * b.CoveredHoles() * 1000
	score += w.OverstackedHoles * b.OverstackedHoles() * 1000
	score += w.Unevenness * b.Unevenness() * 1000
	score += w.Wells * b.Wells() * 1000

	// ln(b2b+2)/(combo+1) are evaluated at the chain-counter floors of -1 too:
	// ln(1) and 0 both fall out to a 0 contribution, so there is no charged
	// state to guard against (spec.md §4.8).
	score += w.B2B * int(math.Log(float64(b2b)+2)*1000)
	score += w.Combo * (int(combo) + 1) * 1000
	return score
}

// ClearWeight returns one hard-drop's contribution to the heuristic's
// clear-history term (spec.md §4.8's "Σ w.clear_{none|mini|normal}·count").
// The classification is of the *clear itself*, by the spin it landed with —
// a non-clearing drop (lines == 0) contributes nothing, a plain line clear
// is ClearNone, and a spin-credited clear is ClearMini or ClearNormal. A
// search branch accumulates this into a running integer across its plies
// (spec.md §9's "clear-history as a growing list" note) instead of cloning a
// list per node; BoardScore is then called once against the final board and
// the caller adds in the accumulated clear and sent totals.
func ClearWeight(lines int, spin Spin, w Weights) int {
	if lines == 0 {
		return 0
	}
	switch spin {
	case SpinMini:
		return w.ClearMini
	case SpinNormal:
		return w.ClearNormal
	default:
		return w.ClearNone
	}
}
