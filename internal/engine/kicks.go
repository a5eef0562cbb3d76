package engine

// KickFamily selects which named kick table rotate() consults.
type KickFamily uint8

const (
	KickSRS KickFamily = iota
	KickSRSPlus
	KickSRSX
	numKickFamilies
)

var kickFamilyNames = [...]string{KickSRS: "SRS", KickSRSPlus: "SRS+", KickSRSX: "SRS-X"}

// String returns the host-facing name of the kick family.
func (f KickFamily) String() string {
	if int(f) >= len(kickFamilyNames) {
		return "?"
	}
	return kickFamilyNames[f]
}

// KickFamilyFromString parses a config's "kicks" field (spec.md §6).
func KickFamilyFromString(s string) (KickFamily, bool) {
	for i, n := range kickFamilyNames {
		if n == s {
			return KickFamily(i), true
		}
	}
	return 0, false
}

// kickOffset is a single candidate offset tried during a kicked rotation.
// Offsets are written in the source's screen-down convention: dy is negated
// relative to the board's y-grows-up axis when applied (spec.md §4.4).
type kickOffset struct{ dx, dy int8 }

// kickRotationIndex maps a (from, to) rotation pair to one of 12 edge
// indices of the rotation graph. Preserved exactly from the source so that
// kick data keyed by these indices lines up (spec.md §4.1).
func kickRotationIndex(from, to int) int {
	switch {
	case from == 0 && to == 1:
		return 0
	case from == 1 && to == 0:
		return 1
	case from == 1 && to == 2:
		return 2
	case from == 2 && to == 1:
		return 3
	case from == 2 && to == 3:
		return 4
	case from == 3 && to == 2:
		return 5
	case from == 3 && to == 0:
		return 6
	case from == 0 && to == 3:
		return 7
	case from == 0 && to == 2:
		return 8
	case from == 1 && to == 3:
		return 9
	case from == 2 && to == 0:
		return 10
	case from == 3 && to == 1:
		return 11
	default:
		panic("engine: invalid rotation transition")
	}
}

// Kicks returns the ordered candidate offsets for rotating shape s from the
// rotation "from" to "to" under kick family f. The first entry is (0, 0)
// for every edge except the four 180-degree edges of the non-I tables,
// whose lists begin directly with their first real offset. rotate() only
// consults this table after the naive rotation failed, so a leading (0, 0)
// entry never succeeds.
func (f KickFamily) Kicks(s Shape, from, to int) []kickOffset {
	idx := kickRotationIndex(from, to)
	table := kickTables[f]
	if s == ShapeI {
		return table.i[idx][:]
	}
	return table.standard[idx][:]
}

// kickSet holds the 12 from/to edges for the two kick-data shapes (I vs all
// others).
type kickSet struct {
	standard [12][5]kickOffset
	i        [12][5]kickOffset
}

// kickTables holds the three named kick families. SRS-X has no distinct
// data in the retrieval pack's original source; it is mapped onto SRS+ (see
// DESIGN.md "Open questions resolved").
var kickTables = [numKickFamilies]kickSet{
	KickSRS: {
		standard: [12][5]kickOffset{
			{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},    // 0->1
			{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},      // 1->0
			{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},      // 1->2
			{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},    // 2->1
			{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},       // 2->3
			{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},   // 3->2
			{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},   // 3->0
			{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},       // 0->3
			{{0, -1}, {1, -1}, {-1, -1}, {1, 0}, {-1, 0}},   // 0->2
			{{1, 0}, {1, -2}, {1, -1}, {0, -2}, {0, -1}},    // 1->3
			{{0, 1}, {-1, 1}, {1, 1}, {-1, 0}, {1, 0}},      // 2->0
			{{-1, 0}, {-1, -2}, {-1, -1}, {0, -2}, {0, -1}}, // 3->1
		},
		i: [12][5]kickOffset{
			{{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}}, // 0->1
			{{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}}, // 1->0
			{{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}}, // 1->2
			{{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}}, // 2->1
			{{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}}, // 2->3
			{{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}}, // 3->2
			{{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}}, // 3->0
			{{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}}, // 0->3
			{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},    // 0->2
			{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},    // 1->3
			{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},    // 2->0
			{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},    // 3->1
		},
	},
	KickSRSPlus: {
		standard: [12][5]kickOffset{
			{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},    // 0->1
			{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},      // 1->0
			{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},      // 1->2
			{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},    // 2->1
			{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},       // 2->3
			{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},   // 3->2
			{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},   // 3->0
			{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},       // 0->3
			{{0, -1}, {1, -1}, {-1, -1}, {1, 0}, {-1, 0}},   // 0->2
			{{1, 0}, {1, -2}, {1, -1}, {0, -2}, {0, -1}},    // 1->3
			{{0, 1}, {-1, 1}, {1, 1}, {-1, 0}, {1, 0}},      // 2->0
			{{-1, 0}, {-1, -2}, {-1, -1}, {0, -2}, {0, -1}}, // 3->1
		},
		i: [12][5]kickOffset{
			{{0, 0}, {1, 0}, {-2, 0}, {-2, 1}, {1, -2}}, // 0->1
			{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}}, // 1->0
			{{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}}, // 1->2
			{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}, // 2->1
			{{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}}, // 2->3
			{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}}, // 3->2
			{{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}}, // 3->0
			{{0, 0}, {-1, 0}, {2, 0}, {2, 1}, {-1, -2}}, // 0->3
			{{0, 0}, {0, -1}, {0, 0}, {0, 0}, {0, 0}},   // 0->2
			{{0, 0}, {1, 0}, {0, 0}, {0, 0}, {0, 0}},    // 1->3
			{{0, 0}, {0, 1}, {0, 0}, {0, 0}, {0, 0}},    // 2->0
			{{0, 0}, {-1, 0}, {0, 0}, {0, 0}, {0, 0}},   // 3->1
		},
	},
}

func init() {
	kickTables[KickSRSX] = kickTables[KickSRSPlus]
}

// isTSTOrFinKick reports whether the given successful kick is the
// specific "TST/Fin" offset that overrides spin classification to Normal
// regardless of corner count (spec.md §4.4).
func isTSTOrFinKick(from, to int, dx, dy int8) bool {
	if (from == 2 && to == 3) || (from == 0 && to == 3) {
		return dx == 1 && dy == -2
	}
	if (from == 2 && to == 1) || (from == 0 && to == 1) {
		return dx == -1 && dy == -2
	}
	return false
}
