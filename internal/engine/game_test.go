package engine

import "testing"

func newTestGame(cfg Config, shapes ...Shape) *GameState {
	return NewGameState(cfg, &constQueue{shapes: shapes}, len(shapes))
}

func TestNewGameStateSpawnsFirstPreviewedPiece(t *testing.T) {
	g := newTestGame(DefaultConfig(), ShapeT, ShapeI, ShapeO)
	if g.Piece.Shape != ShapeT {
		t.Errorf("first spawned piece = %v, want %v", g.Piece.Shape, ShapeT)
	}
	if g.ToppedOut {
		t.Error("a fresh empty-board game must not start topped out")
	}
	if g.B2B != -1 || g.Combo != -1 {
		t.Errorf("B2B/Combo must start at -1, got %d/%d", g.B2B, g.Combo)
	}
}

func TestMoveLeftRightRespectsWalls(t *testing.T) {
	g := newTestGame(DefaultConfig(), ShapeO, ShapeO)
	for g.MoveLeft() {
	}
	leftWallX := g.Piece.X
	if g.MoveLeft() {
		t.Error("MoveLeft must fail once at the left wall")
	}
	g.DasRight()
	if g.Piece.X <= leftWallX {
		t.Error("DasRight from the left wall must move the piece right")
	}
	if g.MoveRight() {
		t.Error("MoveRight must fail once at the right wall")
	}
}

func TestRotateTPieceKicksAroundObstruction(t *testing.T) {
	g := newTestGame(DefaultConfig(), ShapeT, ShapeT)
	// Block exactly the one cell of the naive rot-1 footprint that the
	// table's first real kick offset (-1, 0) does not also occupy, so the
	// naive attempt fails but the kick succeeds.
	x, y := int(g.Piece.X), int(g.Piece.Y)
	g.Board.Set(x, y-1)
	g.rebuildCF()
	if !g.Rotate(1) {
		t.Fatal("expected the rotation to succeed via a kick")
	}
	if g.Piece.Rot != 1 {
		t.Errorf("Piece.Rot = %d, want 1", g.Piece.Rot)
	}
	if g.Piece.X != int8(x-1) {
		t.Errorf("Piece.X = %d, want %d (the (-1,0) kick offset)", g.Piece.X, x-1)
	}
}

func TestHoldSwapFirstUseDoesNotSwap(t *testing.T) {
	g := newTestGame(DefaultConfig(), ShapeT, ShapeI, ShapeO)
	swapped := g.HoldSwap()
	if swapped {
		t.Error("the first HoldSwap of a game should report false (fill, not swap)")
	}
	if g.Hold == nil || *g.Hold != ShapeT {
		t.Errorf("Hold should now contain the original piece T, got %v", g.Hold)
	}
	if g.Piece.Shape != ShapeI {
		t.Errorf("current piece should have advanced to the next preview I, got %v", g.Piece.Shape)
	}
}

func TestHoldSwapSecondUseSwaps(t *testing.T) {
	g := newTestGame(DefaultConfig(), ShapeT, ShapeI, ShapeO)
	g.HoldSwap()
	swapped := g.HoldSwap()
	if !swapped {
		t.Error("a second HoldSwap with a non-empty hold slot should report true")
	}
	if g.Piece.Shape != ShapeT {
		t.Errorf("current piece should be swapped back to the held T, got %v", g.Piece.Shape)
	}
	if g.Hold == nil || *g.Hold != ShapeI {
		t.Errorf("Hold should now contain I, got %v", g.Hold)
	}
}

func TestHardDropClearsLinesAndAdvancesPiece(t *testing.T) {
	g := newTestGame(DefaultConfig(), ShapeO, ShapeO)
	// Fill everything except the two columns the O-piece will occupy at row 0.
	for x := 0; x < BoardWidth; x++ {
		if x == 4 || x == 5 {
			continue
		}
		g.Board.Set(x, 0)
		g.Board.Set(x, 1)
	}
	g.rebuildCF()
	g.dropToFloor()
	lines, _, _ := g.HardDrop()
	if lines == 0 {
		t.Error("expected the O-piece drop to complete and clear at least one line")
	}
	if g.Piece.Shape != ShapeO {
		t.Errorf("next piece should have spawned, got %v", g.Piece.Shape)
	}
}

func TestHardDropComboAndB2BTracking(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ComboTable = ComboTableNone
	g := newTestGame(cfg, ShapeI, ShapeI, ShapeI, ShapeI)

	fillExceptColumn := func(col int) {
		for x := 0; x < BoardWidth; x++ {
			if x == col {
				continue
			}
			g.Board.Set(x, 0)
		}
	}

	dropVerticalIIntoColumn0 := func() int {
		g.Board = NewBoard()
		fillExceptColumn(0)
		g.Piece = FallingPiece{X: 1, Y: int8(BoardHeight - BoardBuffer + 2), Rot: 1, Shape: ShapeI}
		g.rebuildCF()
		lines, _, _ := g.HardDrop()
		return lines
	}

	if lines := dropVerticalIIntoColumn0(); lines == 0 {
		t.Fatal("setup error: first I-piece drop did not clear a line")
	}
	if g.Combo != 0 {
		t.Errorf("Combo after the first clear of a streak should be 0, got %d", g.Combo)
	}

	if lines := dropVerticalIIntoColumn0(); lines == 0 {
		t.Fatal("setup error: second I-piece drop did not clear a line")
	}
	if g.Combo != 1 {
		t.Errorf("Combo after a second consecutive clear should be 1, got %d", g.Combo)
	}
	if g.B2B != -1 {
		t.Errorf("plain no-spin singles must leave B2B uncharged at -1, got %d", g.B2B)
	}
}

func TestHardDropResetsComboOnNonClear(t *testing.T) {
	g := newTestGame(DefaultConfig(), ShapeO, ShapeO)
	g.Combo = 3
	g.dropToFloor()
	g.HardDrop()
	if g.Combo != -1 {
		t.Errorf("a non-clearing drop must reset Combo to -1, got %d", g.Combo)
	}
}

func TestAddGarbageAndDecay(t *testing.T) {
	g := newTestGame(DefaultConfig(), ShapeO, ShapeO)
	g.AddGarbage(2, 3, 0)
	if len(g.Garbage) != 1 {
		t.Fatalf("expected one pending garbage entry, got %d", len(g.Garbage))
	}
	g.dropToFloor()
	g.HardDrop() // a non-clearing drop decays garbage immediately (turns=0)
	if g.Board.GarbageHeight() != 2 {
		t.Errorf("expected 2 rows of garbage inserted into the board, got %d", g.Board.GarbageHeight())
	}
	if len(g.Garbage) != 0 {
		t.Errorf("expected the garbage queue to be drained, got %d entries left", len(g.Garbage))
	}
}

func TestAddGarbageTimerDelaysInsertion(t *testing.T) {
	g := newTestGame(DefaultConfig(), ShapeO, ShapeO, ShapeO)
	g.AddGarbage(2, 3, 1)
	g.dropToFloor()
	g.HardDrop()
	if g.Board.GarbageHeight() != 0 {
		t.Error("garbage with a nonzero timer must not be inserted on the first non-clearing drop")
	}
	if len(g.Garbage) != 1 || g.Garbage[0].TurnsRemaining != 0 {
		t.Fatalf("expected the pending entry's timer to have ticked down to 0, got %+v", g.Garbage)
	}
	g.dropToFloor()
	g.HardDrop()
	if g.Board.GarbageHeight() != 2 {
		t.Errorf("garbage should be inserted once its timer reaches 0, got height %d", g.Board.GarbageHeight())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := newTestGame(DefaultConfig(), ShapeT, ShapeI)
	g.AddGarbage(1, 0, 0)
	c := g.Clone()
	c.Board.Set(0, 0)
	c.Garbage[0].Amount = 99
	if g.Board.Occupied(0, 0) {
		t.Error("mutating a clone's board must not affect the original")
	}
	if g.Garbage[0].Amount == 99 {
		t.Error("mutating a clone's garbage queue must not affect the original")
	}
}
