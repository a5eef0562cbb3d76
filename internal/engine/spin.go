package engine

//go:generate stringer -type Spin

// Spin classifies a rotation that locked a piece into place (spec.md §4.4).
type Spin uint8

const (
	SpinNone Spin = iota
	SpinMini
	SpinNormal
)

func (s Spin) String() string {
	switch s {
	case SpinNone:
		return "none"
	case SpinMini:
		return "mini"
	case SpinNormal:
		return "normal"
	default:
		return "?"
	}
}

// SpinPolicy selects which moves earn spin credit (spec.md §4.4, §6).
type SpinPolicy uint8

const (
	SpinPolicyNone SpinPolicy = iota
	SpinPolicyT
	SpinPolicyTPlus
	SpinPolicyMini
	SpinPolicyMiniPlus
	SpinPolicyAll
	SpinPolicyAllPlus
	SpinPolicyMiniOnly
	SpinPolicyHandheld
	SpinPolicyStupid
)

// spinPolicyNames are the host-facing wire names (spec.md §6).
var spinPolicyNames = [...]string{
	SpinPolicyNone:     "none",
	SpinPolicyT:        "T-spins",
	SpinPolicyTPlus:    "T-spins+",
	SpinPolicyMini:     "all-mini",
	SpinPolicyMiniPlus: "all-mini+",
	SpinPolicyAll:      "all",
	SpinPolicyAllPlus:  "all+",
	SpinPolicyMiniOnly: "mini-only",
	SpinPolicyHandheld: "handheld",
	SpinPolicyStupid:   "stupid",
}

// String returns the host-facing name of the spin policy.
func (p SpinPolicy) String() string {
	if int(p) >= len(spinPolicyNames) {
		return "?"
	}
	return spinPolicyNames[p]
}

// SpinPolicyFromString parses a config's "spins" field (spec.md §6).
func SpinPolicyFromString(s string) (SpinPolicy, bool) {
	for i, n := range spinPolicyNames {
		if n == s {
			return SpinPolicy(i), true
		}
	}
	return 0, false
}

// corners indexes NW, NE, SE, SW board-adjacency tests, used both to detect
// a T-spin and, via rot and rot+1, to decide Mini vs Normal (spec.md §4.4).
type corners struct{ nw, ne, se, sw bool }

func (c corners) filledCount() int {
	n := 0
	for _, v := range [...]bool{c.nw, c.ne, c.se, c.sw} {
		if v {
			n++
		}
	}
	return n
}

// ordered returns the corner flags in the [NW, NE, SE, SW] order the spec
// indexes by rotation.
func (c corners) ordered() [4]bool {
	return [4]bool{c.nw, c.ne, c.se, c.sw}
}

// classifySpin runs after every successful rotation of p on board b and
// returns the spin classification under policy. from/to are the rotation
// indices of the rotation just performed; kicked/kickDX/kickDY describe the
// kick offset that was used, if any (kicked is false for a naive rotation).
func classifySpin(b *Board, p FallingPiece, policy SpinPolicy, from, to int, kicked bool, kickDX, kickDY int8) Spin {
	if policy == SpinPolicyNone {
		return SpinNone
	}

	x, y := int(p.X), int(p.Y)
	c := corners{
		ne: b.Occupied(x, y),
		nw: b.Occupied(x-2, y),
		se: b.Occupied(x, y-2),
		sw: b.Occupied(x-2, y-2),
	}

	if p.Shape == ShapeT {
		result := SpinNone
		if c.filledCount() >= 3 {
			ord := c.ordered()
			rot := p.Rot & 3
			if ord[rot] && ord[(rot+1)%4] {
				result = SpinNormal
			} else {
				result = SpinMini
			}
		}
		// The TST/Fin kick overrides to Normal regardless of corner count,
		// including the below-3-corners case (spec.md §4.4).
		if kicked && isTSTOrFinKick(from, to, kickDX, kickDY) {
			result = SpinNormal
		}
		return result
	}

	return checkImmobileNonT(b, p, policy, isImmobile(b, p))
}

// isImmobile reports whether p cannot move in any of the four cardinal
// directions at its current rotation.
func isImmobile(b *Board, p FallingPiece) bool {
	x, y, rot := int(p.X), int(p.Y), int(p.Rot)
	return collidesAt(b, p.Shape, x+1, y, rot) &&
		collidesAt(b, p.Shape, x-1, y, rot) &&
		collidesAt(b, p.Shape, x, y+1, rot) &&
		collidesAt(b, p.Shape, x, y-1, rot)
}

// checkImmobileNonT applies the non-T "immobility" rule (spec.md §4.4): for
// non-T pieces, an immobile lock earns Mini, Normal, or nothing depending on
// policy. classifySpin never applies it to a T-piece.
func checkImmobileNonT(b *Board, p FallingPiece, policy SpinPolicy, immobile bool) Spin {
	if !immobile {
		return SpinNone
	}
	switch policy {
	case SpinPolicyMini, SpinPolicyMiniPlus, SpinPolicyMiniOnly:
		return SpinMini
	case SpinPolicyAll, SpinPolicyAllPlus, SpinPolicyHandheld:
		return SpinNormal
	case SpinPolicyStupid:
		return SpinMini
	default: // T, TPlus, None
		return SpinNone
	}
}
