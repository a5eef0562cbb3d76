// Package trainer runs self-play tournaments that evolve the board
// heuristic's weights (spec.md §5, original_source/src/trainer.rs).
package trainer

import (
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tetrisbot/tetrisbot/internal/bag"
	"github.com/tetrisbot/tetrisbot/internal/engine"
)

// SearchWidth and SearchDepth bound the beam search each player runs during
// a training match — shallower than live play, since a full tournament
// epoch runs many thousands of matches (spec.md §5).
const (
	SearchWidth = 16
	SearchDepth = 3
)

// Player is one evolving candidate in the tournament population.
type Player struct {
	Weights     engine.Weights
	Performance uint32
}

// applyChoice commits a beam-search result (and, if it called for holding,
// the hold swap) to a live match state, then hard-drops.
func applyChoice(g *engine.GameState, placement engine.ExpanderResult, usedHold bool) int {
	if usedHold {
		g.HoldSwap()
	}
	g.Piece.X, g.Piece.Y, g.Piece.Rot = placement.X, placement.Y, placement.Rot
	g.LastSpin = placement.Spin
	_, _, sent := g.HardDrop()
	return sent
}

// playMatch runs one head-to-head game between w1 and w2 under cfg, seeded
// by seed so both sides see the same piece sequence, and returns 1 if w1
// wins, 2 if w2 wins (spec.md §5 "play_match").
func playMatch(cfg engine.Config, w1, w2 engine.Weights, seed uint64, rng *rand.Rand) int {
	q1 := bag.NewBag(seed, 32, nil)
	q2 := bag.NewBag(seed, 32, nil)
	g1 := engine.NewGameState(cfg, q1, 16)
	g2 := engine.NewGameState(cfg, q2, 16)

	for {
		placement1, hold1, found1 := engine.BeamSearch(g1, w1, SearchWidth, SearchDepth, nil)
		if !found1 {
			return 2
		}
		send1 := applyChoice(g1, placement1, hold1)

		placement2, hold2, found2 := engine.BeamSearch(g2, w2, SearchWidth, SearchDepth, nil)
		if !found2 {
			return 1
		}
		send2 := applyChoice(g2, placement2, hold2)

		if g1.ToppedOut {
			return 2
		}
		if g2.ToppedOut {
			return 1
		}

		col := rng.Intn(engine.BoardWidth)
		if send1 > send2 {
			g2.AddGarbage(send1-send2, col, 1)
		} else if send2 > send1 {
			g1.AddGarbage(send2-send1, col, 1)
		}

		if g1.ToppedOut {
			return 2
		}
		if g2.ToppedOut {
			return 1
		}
	}
}

// Train runs epochs rounds of a round-robin tournament among numPlayers
// candidates seeded from initial, breeding the top quarter of each epoch
// into the next, and returns the best performer's weights (spec.md §5).
func Train(cfg engine.Config, initial engine.Weights, numPlayers, epochs int, seed int64) engine.Weights {
	rng := rand.New(rand.NewSource(seed))

	players := make([]Player, numPlayers)
	for i := range players {
		players[i] = Player{Weights: initial.Mutate(rng, 0.5, 20)}
	}

	for epoch := 0; epoch < epochs; epoch++ {
		epochWeights := make([]engine.Weights, numPlayers)
		for i, p := range players {
			epochWeights[i] = p.Weights
		}
		perf := make([]uint32, numPlayers)

		var pairs [][2]int
		for i := 0; i < numPlayers; i++ {
			for j := i + 1; j < numPlayers; j++ {
				pairs = append(pairs, [2]int{i, j})
			}
		}

		var g errgroup.Group
		results := make([]int, len(pairs))
		for idx, pair := range pairs {
			idx, pair := idx, pair
			matchSeed := rng.Uint64()
			g.Go(func() error {
				matchRNG := rand.New(rand.NewSource(int64(matchSeed)))
				results[idx] = playMatch(cfg, epochWeights[pair[0]], epochWeights[pair[1]], matchSeed, matchRNG)
				return nil
			})
		}
		_ = g.Wait()

		for idx, pair := range pairs {
			if results[idx] == 1 {
				perf[pair[0]]++
			} else {
				perf[pair[1]]++
			}
		}
		for i := range players {
			players[i].Performance = perf[i]
		}

		if epoch == epochs-1 {
			break
		}

		sorted := append([]Player(nil), players...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Performance > sorted[j].Performance })
		topQuart := sorted[:max1(numPlayers/4)]

		for i := range players {
			parent := topQuart[i%len(topQuart)]
			players[i] = Player{Weights: parent.Weights.Mutate(rng, 0.1, 3)}
		}
	}

	best := players[0]
	for _, p := range players[1:] {
		if p.Performance > best.Performance {
			best = p
		}
	}
	return best.Weights
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
