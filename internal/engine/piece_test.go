package engine

import "testing"

func TestSpawnPosition(t *testing.T) {
	p := Spawn(ShapeT)
	if p.Rot != 0 {
		t.Errorf("spawned piece should be at rotation 0, got %d", p.Rot)
	}
	wantX := int8((BoardWidth+ShapeT.Width())/2 - 1)
	if p.X != wantX {
		t.Errorf("spawn X = %d, want %d", p.X, wantX)
	}
	wantY := int8(BoardHeight - BoardBuffer + 2)
	if p.Y != wantY {
		t.Errorf("spawn Y = %d, want %d", p.Y, wantY)
	}
}

func TestToppedOut(t *testing.T) {
	b := NewBoard()
	p := Spawn(ShapeO)
	if ToppedOut(b, p) {
		t.Error("an empty board must never top out a fresh spawn")
	}

	full := NewBoard()
	for x := 0; x < BoardWidth; x++ {
		for y := 0; y < BoardHeight; y++ {
			full.Set(x, y)
		}
	}
	if !ToppedOut(full, p) {
		t.Error("spawning into a completely full board must top out")
	}
}

func TestBlocksMatchesShapeOffsets(t *testing.T) {
	p := FallingPiece{X: 5, Y: 5, Rot: 0, Shape: ShapeO}
	blocks := p.Blocks()
	offsets := ShapeO.Blocks(0)
	for i, off := range offsets {
		want := [2]int{5 - int(off.dx), 5 - int(off.dy)}
		if blocks[i] != want {
			t.Errorf("block %d = %v, want %v", i, blocks[i], want)
		}
	}
}
