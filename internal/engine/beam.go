package engine

import "container/heap"

// BeamWidth bounds how many candidate lines the beam search carries forward
// at each ply (spec.md §4.6).
const BeamWidth = 32

// BeamDepth bounds how many plies the beam search looks ahead, absent a
// shallower limit imposed by how many pieces are actually previewed.
const BeamDepth = 4

// beamEntry is one surviving branch: the game state it reached, its score,
// the running (unscaled) clear-history weight and cumulative damage sent
// along this branch (spec.md §3's "search state", §9's note on folding the
// clear history into a running integer), and the index into the root-choice
// table identifying which ply-0 placement (and whether hold was used) it
// descends from.
type beamEntry struct {
	state    *GameState
	score    int
	cumClear int
	cumSent  int
	rootIdx  int
}

// scoreEntry evaluates a branch's current board plus its running clear and
// sent totals against weights (spec.md §4.8). Board-shape and chain-counter
// terms come from the branch's live (cumulative) board and counters; they
// are never summed across plies since the board itself already reflects
// every prior drop.
func scoreEntry(state *GameState, cumClear, cumSent int, w Weights) int {
	return BoardScore(state.Board, state.B2B, state.Combo, w) +
		cumClear*1000 + w.Sent*cumSent*1000
}

type beamHeap []beamEntry

func (h beamHeap) Len() int            { return len(h) }
func (h beamHeap) Less(i, j int) bool  { return h[i].score < h[j].score }
func (h beamHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *beamHeap) Push(x interface{}) { *h = append(*h, x.(beamEntry)) }
func (h *beamHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// pushBounded keeps h at most width entries, evicting the lowest score when
// full and the newcomer beats it.
func pushBounded(h *beamHeap, e beamEntry, width int) {
	if h.Len() < width {
		heap.Push(h, e)
		return
	}
	if e.score > (*h)[0].score {
		heap.Pop(h)
		heap.Push(h, e)
	}
}

func bestOf(h beamHeap) (beamEntry, bool) {
	if len(h) == 0 {
		return beamEntry{}, false
	}
	best := h[0]
	for _, e := range h[1:] {
		if e.score > best.score {
			best = e
		}
	}
	return best, true
}

// rootChoice is the ply-0 decision a beam branch is ultimately judging.
type rootChoice struct {
	placement ExpanderResult
	usedHold  bool
}

// expandNode drops every resting pose of state.Piece and calls add for each
// resulting child, the placement that produced it (before HardDrop pulls
// the next piece and overwrites state.Piece), and the lines/spin/damage that
// drop produced. Children that topped out are dropped rather than passed to
// add (spec.md §4.6's "skip if topped out").
func expandNode(state *GameState, add func(child *GameState, placement ExpanderResult, lines int, spin Spin, sent int)) {
	cf := BuildCollisionField(state.Board, state.Piece.Shape)
	results := Expand(state.Board, cf, state.Config.Kicks, state.Piece.Shape, state.Config.Spins, state.Piece)
	for _, r := range results {
		child := state.Clone()
		child.Piece = FallingPiece{X: r.X, Y: r.Y, Rot: r.Rot, Shape: state.Piece.Shape}
		child.LastSpin = r.Spin
		lines, spin, sent := child.HardDrop()
		if child.ToppedOut {
			continue
		}
		add(child, r, lines, spin, sent)
	}
}

// BeamSearch explores hold-and-no-hold branches from root out to depth plies,
// keeping at most width lines per ply (bounded further by how many pieces
// are actually previewed), and returns the ply-0 placement of the
// best-scoring line found, and whether it requires holding first (spec.md
// §4.6). Hold is only considered at ply 0. found is false if neither the
// current piece nor the hold alternative has a placement that does not top
// out.
func BeamSearch(root *GameState, weights Weights, width, depth int, logger SearchLogger) (placement ExpanderResult, usedHold bool, found bool) {
	if logger == nil {
		logger = NulSearchLogger{}
	}
	if width <= 0 {
		width = BeamWidth
	}
	if depth <= 0 {
		depth = BeamDepth
	}

	searchRoot := root.Clone()
	searchRoot.queue = nil

	var roots []rootChoice
	frontier := make(beamHeap, 0, width)

	considerRoot := func(state *GameState, uh bool) {
		expandNode(state, func(child *GameState, placement ExpanderResult, lines int, spin Spin, sent int) {
			idx := len(roots)
			roots = append(roots, rootChoice{placement: placement, usedHold: uh})
			cumClear := ClearWeight(lines, spin, weights)
			score := scoreEntry(child, cumClear, sent, weights)
			pushBounded(&frontier, beamEntry{state: child, score: score, cumClear: cumClear, cumSent: sent, rootIdx: idx}, width)
		})
	}

	considerRoot(searchRoot, false)
	if searchRoot.Hold != nil || searchRoot.HasNextPiece() {
		swapped := searchRoot.Clone()
		swapped.HoldSwap()
		considerRoot(swapped, true)
	}

	logger.BeamStep(0, frontier.Len(), 0)
	if best, ok := bestOf(frontier); ok {
		logger.BeamStep(0, frontier.Len(), best.score)
	}

	for ply := 1; ply < depth; ply++ {
		next := make(beamHeap, 0, width)
		for _, entry := range frontier {
			if !entry.state.HasNextPiece() {
				pushBounded(&next, entry, width)
				continue
			}
			expandNode(entry.state, func(child *GameState, _ ExpanderResult, lines int, spin Spin, sent int) {
				cumClear := entry.cumClear + ClearWeight(lines, spin, weights)
				cumSent := entry.cumSent + sent
				score := scoreEntry(child, cumClear, cumSent, weights)
				pushBounded(&next, beamEntry{state: child, score: score, cumClear: cumClear, cumSent: cumSent, rootIdx: entry.rootIdx}, width)
			})
		}
		if next.Len() == 0 {
			break
		}
		frontier = next
		if best, ok := bestOf(frontier); ok {
			logger.BeamStep(ply, frontier.Len(), best.score)
		}
	}

	best, ok := bestOf(frontier)
	if !ok {
		return ExpanderResult{}, false, false
	}
	return roots[best.rootIdx].placement, roots[best.rootIdx].usedHold, true
}
