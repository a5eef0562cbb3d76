package engine

//go:generate stringer -type Move

// Move is one action in the input vocabulary (spec.md §4.4).
type Move uint8

const (
	MoveNone Move = iota
	MoveLeft
	MoveRight
	MoveSoftDrop
	MoveDasLeft
	MoveDasRight
	MoveCCW
	MoveCW
	MoveFlip
	MoveHold
	MoveHardDrop
	numMoves
)

var moveNames = [...]string{
	MoveNone:     "none",
	MoveLeft:     "moveLeft",
	MoveRight:    "moveRight",
	MoveSoftDrop: "softDrop",
	MoveDasLeft:  "dasLeft",
	MoveDasRight: "dasRight",
	MoveCCW:      "rotateCCW",
	MoveCW:       "rotateCW",
	MoveFlip:     "rotate180",
	MoveHold:     "hold",
	MoveHardDrop: "hardDrop",
}

// String returns the camelCase wire name used by the host protocol (§6).
func (m Move) String() string {
	if int(m) >= len(moveNames) {
		return "?"
	}
	return moveNames[m]
}

// MoveFromString parses a camelCase wire name back into a Move.
func MoveFromString(s string) (Move, bool) {
	for i, n := range moveNames {
		if n == s {
			return Move(i), true
		}
	}
	return 0, false
}

// MarshalJSON renders m as its camelCase wire name (spec.md §6).
func (m Move) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON parses m from its camelCase wire name.
func (m *Move) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	mv, ok := MoveFromString(s)
	if !ok {
		return errUnknownMove(s)
	}
	*m = mv
	return nil
}

type errUnknownMove string

func (e errUnknownMove) Error() string { return "engine: unknown move " + string(e) }

// expanderMoves is the reduced alphabet the expander (C5) walks: single-step
// translate/rotate and one soft drop, no DAS and no hold (spec.md §4.5).
var expanderMoves = [...]Move{MoveCW, MoveCCW, MoveFlip, MoveLeft, MoveRight, MoveSoftDrop}

// expanderForbidden reports whether mv is a trivially-inverse successor of
// last and should be pruned from the expander's BFS (spec.md §4.5).
func expanderForbidden(last, mv Move) bool {
	switch {
	case last == MoveCCW && mv == MoveCW:
		return true
	case last == MoveCW && mv == MoveCCW:
		return true
	case last == MoveFlip && mv == MoveFlip:
		return true
	case last == MoveLeft && mv == MoveRight:
		return true
	case last == MoveRight && mv == MoveLeft:
		return true
	case last == MoveSoftDrop && mv == MoveSoftDrop:
		return true
	default:
		return false
	}
}

// keypathMoves is the larger alphabet the key-path reconstructor (C7) walks:
// everything the expander has, plus DAS and a terminal hard drop. Indexed by
// the previous move, mirroring the source's per-last-move successor table so
// that e.g. a CW immediately after a CCW is still offered (it is the only
// way to reach certain TST/Fin placements) while the reverse of the last
// translate, a DAS towards the wall just reached, and a repeated soft drop
// or flip are pruned.
var keypathMoves = [numMoves][]Move{
	MoveNone:     {MoveCW, MoveCCW, MoveFlip, MoveLeft, MoveRight, MoveSoftDrop, MoveDasLeft, MoveDasRight, MoveHardDrop},
	MoveLeft:     {MoveCW, MoveCCW, MoveFlip, MoveLeft, MoveSoftDrop, MoveDasRight, MoveHardDrop},
	MoveRight:    {MoveCW, MoveCCW, MoveFlip, MoveRight, MoveSoftDrop, MoveDasLeft, MoveHardDrop},
	MoveSoftDrop: {MoveCW, MoveCCW, MoveFlip, MoveLeft, MoveRight, MoveDasLeft, MoveDasRight, MoveHardDrop},
	MoveCCW:      {MoveCW, MoveCCW, MoveFlip, MoveLeft, MoveRight, MoveSoftDrop, MoveDasLeft, MoveDasRight, MoveHardDrop},
	MoveCW:       {MoveCW, MoveCCW, MoveFlip, MoveLeft, MoveRight, MoveSoftDrop, MoveDasLeft, MoveDasRight, MoveHardDrop},
	MoveFlip:     {MoveCW, MoveCCW, MoveLeft, MoveRight, MoveSoftDrop, MoveDasLeft, MoveDasRight, MoveHardDrop},
	MoveDasLeft:  {MoveCW, MoveCCW, MoveFlip, MoveRight, MoveSoftDrop, MoveDasRight, MoveHardDrop},
	MoveDasRight: {MoveCW, MoveCCW, MoveFlip, MoveLeft, MoveSoftDrop, MoveDasLeft, MoveHardDrop},
}
