package engine

import "testing"

func TestShapeFromStringRoundTrip(t *testing.T) {
	for s := ShapeI; s < numShapes; s++ {
		name := s.String()
		got, ok := ShapeFromString(name)
		if !ok || got != s {
			t.Errorf("ShapeFromString(%q) = %v, %v; want %v, true", name, got, ok, s)
		}
	}
	if _, ok := ShapeFromString("X"); ok {
		t.Error("unknown shape name must not parse")
	}
}

func TestShapeWidths(t *testing.T) {
	want := map[Shape]int{
		ShapeI: 4, ShapeJ: 3, ShapeL: 3, ShapeO: 2, ShapeS: 3, ShapeT: 3, ShapeZ: 3,
	}
	for s, w := range want {
		if got := s.Width(); got != w {
			t.Errorf("%v.Width() = %d, want %d", s, got, w)
		}
	}
}

func TestBlocksEveryRotationHasFourDistinctCells(t *testing.T) {
	for s := ShapeI; s < numShapes; s++ {
		for rot := 0; rot < 4; rot++ {
			blocks := s.Blocks(rot)
			seen := map[block]bool{}
			for _, b := range blocks {
				if seen[b] {
					t.Fatalf("%v rot %d: duplicate block offset %v", s, rot, b)
				}
				seen[b] = true
			}
		}
	}
}
