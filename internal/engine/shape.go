package engine

//go:generate stringer -type Shape

// Shape identifies one of the seven tetromino variants.
type Shape uint8

const (
	ShapeI Shape = iota
	ShapeJ
	ShapeL
	ShapeO
	ShapeS
	ShapeT
	ShapeZ
	numShapes
)

// String returns the single-letter name of the shape.
func (s Shape) String() string {
	if int(s) >= len(shapeNames) {
		return "?"
	}
	return shapeNames[s]
}

var shapeNames = [...]string{"I", "J", "L", "O", "S", "T", "Z"}

// ShapeFromString parses a single-letter shape name.
func ShapeFromString(s string) (Shape, bool) {
	for i, n := range shapeNames {
		if n == s {
			return Shape(i), true
		}
	}
	return 0, false
}

// block is a single (dx, dy) offset from a piece's origin.
// Absolute block position is (origin.x - dx, origin.y - dy).
type block struct{ dx, dy int8 }

// tetromino holds the bounding width and the four rotation states of a shape.
type tetromino struct {
	width int8
	rots  [4][4]block
}

// Width returns the bounding-box width of shape, used by the spawn formula.
func (s Shape) Width() int {
	return int(tetrominoes[s].width)
}

// Blocks returns the four (dx, dy) offsets of shape at rotation rot.
func (s Shape) Blocks(rot int) [4]block {
	return tetrominoes[s].rots[rot&3]
}

// tetrominoes is the literal rotation-data table. Values are preserved
// exactly from the source, since the engine's tactical behaviour is defined
// by this data (spec.md §4.1).
var tetrominoes = [numShapes]tetromino{
	ShapeI: {
		width: 4,
		rots: [4][4]block{
			{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
			{{1, 3}, {1, 2}, {1, 1}, {1, 0}},
			{{3, 2}, {2, 2}, {1, 2}, {0, 2}},
			{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		},
	},
	ShapeJ: {
		width: 3,
		rots: [4][4]block{
			{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
			{{0, 0}, {1, 2}, {1, 1}, {1, 0}},
			{{0, 2}, {2, 1}, {1, 1}, {0, 1}},
			{{2, 2}, {1, 0}, {1, 1}, {1, 2}},
		},
	},
	ShapeL: {
		width: 3,
		rots: [4][4]block{
			{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
			{{0, 2}, {1, 2}, {1, 1}, {1, 0}},
			{{2, 2}, {2, 1}, {1, 1}, {0, 1}},
			{{2, 0}, {1, 0}, {1, 1}, {1, 2}},
		},
	},
	ShapeO: {
		width: 2,
		rots: [4][4]block{
			{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
			{{0, 1}, {0, 0}, {1, 1}, {1, 0}},
			{{1, 1}, {0, 1}, {1, 0}, {0, 0}},
			{{1, 0}, {1, 1}, {0, 0}, {0, 1}},
		},
	},
	ShapeS: {
		width: 3,
		rots: [4][4]block{
			{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
			{{0, 2}, {0, 1}, {1, 1}, {1, 0}},
			{{2, 2}, {1, 2}, {1, 1}, {0, 1}},
			{{2, 0}, {2, 1}, {1, 1}, {1, 2}},
		},
	},
	ShapeT: {
		width: 3,
		rots: [4][4]block{
			{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
			{{0, 1}, {1, 2}, {1, 1}, {1, 0}},
			{{1, 2}, {2, 1}, {1, 1}, {0, 1}},
			{{2, 1}, {1, 0}, {1, 1}, {1, 2}},
		},
	},
	ShapeZ: {
		width: 3,
		rots: [4][4]block{
			{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
			{{0, 1}, {0, 0}, {1, 2}, {1, 1}},
			{{1, 2}, {0, 2}, {2, 1}, {1, 1}},
			{{2, 1}, {2, 2}, {1, 0}, {1, 1}},
		},
	},
}
