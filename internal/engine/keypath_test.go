package engine

import "testing"

// applyMoveToGame mirrors protocol.Host.applyMove, without importing the
// protocol package (which would create an import cycle back into engine).
func applyMoveToGame(g *GameState, mv Move) {
	switch mv {
	case MoveLeft:
		g.MoveLeft()
	case MoveRight:
		g.MoveRight()
	case MoveSoftDrop:
		g.SoftDrop()
	case MoveDasLeft:
		g.DasLeft()
	case MoveDasRight:
		g.DasRight()
	case MoveCCW:
		g.Rotate(3)
	case MoveCW:
		g.Rotate(1)
	case MoveFlip:
		g.Rotate(2)
	case MoveHardDrop:
		g.HardDrop()
	}
}

func TestFindKeysStraightDropOnEmptyBoard(t *testing.T) {
	b := NewBoard()
	cf := BuildCollisionField(b, ShapeO)
	start := Spawn(ShapeO)

	results := Expand(b, cf, KickSRSPlus, ShapeO, SpinPolicyTPlus, start)
	if len(results) == 0 {
		t.Fatal("expected at least one landable pose for an O-piece on an empty board")
	}
	target := results[0]

	path, ok := FindKeys(b, cf, KickSRSPlus, ShapeO, SpinPolicyTPlus, start, target)
	if !ok {
		t.Fatal("FindKeys failed to find a path to a pose the expander itself reported reachable")
	}
	if len(path) == 0 || path[len(path)-1] != MoveHardDrop {
		t.Fatalf("reconstructed path must end in a hard drop, got %v", path)
	}
}

func TestFindKeysReconstructsEveryExpandedPose(t *testing.T) {
	b := NewBoard()
	b.Set(0, 0)
	b.Set(9, 0)
	b.Set(9, 1)
	cf := BuildCollisionField(b, ShapeT)
	start := Spawn(ShapeT)

	results := Expand(b, cf, KickSRSPlus, ShapeT, SpinPolicyTPlus, start)
	if len(results) == 0 {
		t.Fatal("expected at least one landable T-piece pose")
	}

	for _, target := range results {
		path, ok := FindKeys(b, cf, KickSRSPlus, ShapeT, SpinPolicyTPlus, start, target)
		if !ok {
			t.Errorf("no key path found to target %+v", target)
			continue
		}

		q := &constQueue{shapes: []Shape{ShapeT, ShapeT}}
		g := NewGameState(func() Config {
			c := DefaultConfig()
			c.Kicks = KickSRSPlus
			c.Spins = SpinPolicyTPlus
			return c
		}(), q, 1)
		g.Board = b.Clone()
		g.Piece = start
		g.CF = BuildCollisionField(g.Board, ShapeT)

		for _, mv := range path[:len(path)-1] {
			applyMoveToGame(g, mv)
		}

		gotBlocks := blockSet(g.Piece.Blocks())
		wantBlocks := blockSet(FallingPiece{X: target.X, Y: target.Y, Rot: target.Rot, Shape: ShapeT}.Blocks())
		if !blocksEqual(gotBlocks, wantBlocks) {
			t.Errorf("target %+v: replayed path landed at blocks %v, want %v (path=%v)", target, gotBlocks, wantBlocks, path)
		}
		if int(g.Piece.Rot)&1 != int(target.Rot)&1 {
			t.Errorf("target %+v: replayed rotation parity mismatch: got rot=%d", target, g.Piece.Rot)
		}
		if g.LastSpin != target.Spin {
			t.Errorf("target %+v: replayed spin %v does not match expander's reported spin %v", target, g.LastSpin, target.Spin)
		}
	}
}

// constQueue cycles through a fixed list of shapes, for deterministic tests.
type constQueue struct {
	shapes []Shape
	i      int
}

func (q *constQueue) Next() Shape {
	s := q.shapes[q.i%len(q.shapes)]
	q.i++
	return s
}
