package engine

// FallingPiece is the piece currently under player control.
type FallingPiece struct {
	X, Y int8
	Rot  int8
	Shape Shape
}

// Spawn returns shape spawned at the standard spawn position (spec.md §3).
func Spawn(shape Shape) FallingPiece {
	return FallingPiece{
		X:    int8((BoardWidth+shape.Width())/2 - 1),
		Y:    int8(BoardHeight - BoardBuffer + 2),
		Rot:  0,
		Shape: shape,
	}
}

// ToppedOut reports whether p's origin collides immediately, i.e. the piece
// could not even spawn (spec.md §3).
func ToppedOut(b *Board, p FallingPiece) bool {
	return collidesAt(b, p.Shape, int(p.X), int(p.Y), int(p.Rot))
}

// Blocks returns the four absolute (x, y) board cells p currently occupies.
func (p FallingPiece) Blocks() [4][2]int {
	var out [4][2]int
	for i, blk := range p.Shape.Blocks(int(p.Rot)) {
		out[i] = [2]int{int(p.X) - int(blk.dx), int(p.Y) - int(blk.dy)}
	}
	return out
}
