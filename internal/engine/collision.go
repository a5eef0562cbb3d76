package engine

// collisionWidth is BoardWidth+2: the origin is a piece's top-right corner,
// so a piece against the right wall can have its origin up to two columns
// past it (spec.md §4.3). Test still rejects x outside [0, collisionWidth).
const collisionWidth = BoardWidth + 2

// CollisionField is a precomputed per-rotation collision lookup for one
// piece shape against one board state. Bit y of field[rot][x] is 1 iff
// placing the piece with origin (x, y, rot) would overlap the board or go
// out of bounds.
type CollisionField struct {
	field [4][collisionWidth]uint64
}

// BuildCollisionField sweeps each of the four blocks of each rotation of s
// against b, producing the field described in spec.md §4.3. Must be rebuilt
// whenever the board or the piece shape changes.
func BuildCollisionField(b *Board, s Shape) *CollisionField {
	cf := &CollisionField{}
	for rot := 0; rot < 4; rot++ {
		blocks := s.Blocks(rot)
		for _, blk := range blocks {
			dx := int(blk.dx)
			dy := uint(blk.dy)
			for x := 0; x < collisionWidth; x++ {
				var src uint64
				bx := x - dx
				if bx >= 0 && bx < BoardWidth {
					src = b.cols[bx]
				} else {
					src = fullMask | ^fullMask // all-ones
				}
				cf.field[rot][x] |= ^(^src << dy)
			}
		}
	}
	return cf
}

// Test reports whether origin (x, y, rot) collides: out of the sentinel
// range, at or above BoardHeight, or a set bit in the precomputed field.
func (cf *CollisionField) Test(x, y, rot int) bool {
	if x < 0 || x >= collisionWidth || y < 0 || y >= BoardHeight {
		return true
	}
	return cf.field[rot&3][x]&(1<<uint(y)) != 0
}

// collidesAt directly tests whether shape at origin (x, y, rot) overlaps b,
// without consulting a precomputed field. Used where rebuilding or indexing
// a CollisionField would be wasted work (a single ad hoc test, as in the
// naive rotation attempt and the immobility check of spec.md §4.4).
func collidesAt(b *Board, shape Shape, x, y, rot int) bool {
	for _, blk := range shape.Blocks(rot) {
		if b.Occupied(x-int(blk.dx), y-int(blk.dy)) {
			return true
		}
	}
	return false
}
