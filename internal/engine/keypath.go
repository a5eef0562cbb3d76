package engine

// keypathMaxHistory bounds how many moves the reconstructor will try before
// giving up on a target pose (spec.md §4.7).
const keypathMaxHistory = 64

type keypathQueueEntry struct {
	x, y, rot int8
	spin      Spin
	lastMove  Move
	path      []Move
}

// blockSet is the four absolute board cells a pose occupies, used for the
// order-independent equality test of spec.md §4.7.
type blockSet [4][2]int

func blocksEqual(a, b blockSet) bool {
	for _, p := range a {
		found := false
		for _, q := range b {
			if p == q {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// FindKeys searches, over the larger keypathMoves alphabet (translate,
// rotate, DAS, and a terminal hard drop), for a move sequence that carries
// shape from its spawned pose to target — the resting pose an earlier
// Expand call reported reachable. Success requires the landed piece's four
// absolute block cells to match target's as a set, its rotation to agree
// with target's mod 2, and its spin classification to match target's
// (spec.md §4.7). Returns (nil, false) if no sequence within
// keypathMaxHistory moves satisfies all three.
func FindKeys(b *Board, cf *CollisionField, kicks KickFamily, shape Shape, policy SpinPolicy, from FallingPiece, target ExpanderResult) ([]Move, bool) {
	var visited expanderBitset
	startRot := from.Rot
	if shape == ShapeO {
		startRot = 0
	}

	targetBlocks := blockSet(FallingPiece{X: target.X, Y: target.Y, Rot: target.Rot, Shape: shape}.Blocks())

	queue := make([]keypathQueueEntry, 0, 256)
	queue = append(queue, keypathQueueEntry{from.X, from.Y, startRot, SpinNone, MoveNone, nil})
	visited.set(poseKey(int(from.X), int(from.Y), int(startRot)))

	for qi := 0; qi < len(queue); qi++ {
		cur := queue[qi]

		if int(cur.rot)&1 == int(target.Rot)&1 && cur.spin == target.Spin {
			curBlocks := blockSet(FallingPiece{X: cur.x, Y: cur.y, Rot: cur.rot, Shape: shape}.Blocks())
			if blocksEqual(curBlocks, targetBlocks) && cf.Test(int(cur.x), int(cur.y)-1, int(cur.rot)) {
				return append(append([]Move(nil), cur.path...), MoveHardDrop), true
			}
		}

		if len(cur.path) >= keypathMaxHistory {
			continue
		}

		for _, mv := range keypathMoves[cur.lastMove] {
			if mv == MoveHardDrop {
				continue
			}
			nx, ny, nrot, spin, ok := applyKeypathMove(b, cf, kicks, shape, policy, cur.x, cur.y, cur.rot, cur.spin, mv)
			if !ok {
				continue
			}
			if shape == ShapeO {
				nrot = 0
			}
			pk := poseKey(int(nx), int(ny), int(nrot))
			if visited.test(pk) {
				continue
			}
			visited.set(pk)
			path := make([]Move, len(cur.path)+1)
			copy(path, cur.path)
			path[len(cur.path)] = mv
			queue = append(queue, keypathQueueEntry{nx, ny, nrot, spin, mv, path})
		}
	}

	return nil, false
}

// applyKeypathMove is applyExpanderMove extended with the two DAS moves the
// key-path alphabet adds over the expander's, and with spin tracking: a
// translate/DAS/soft-drop clears spin, a rotation reclassifies it (mirroring
// GameState.shift/SoftDrop/Rotate).
func applyKeypathMove(b *Board, cf *CollisionField, kicks KickFamily, shape Shape, policy SpinPolicy, x, y, rot int8, spin Spin, mv Move) (nx, ny, nrot int8, nspin Spin, ok bool) {
	switch mv {
	case MoveDasLeft:
		nx = x
		for !cf.Test(int(nx)-1, int(y), int(rot)) {
			nx--
		}
		return nx, y, rot, SpinNone, nx != x
	case MoveDasRight:
		nx = x
		for !cf.Test(int(nx)+1, int(y), int(rot)) {
			nx++
		}
		return nx, y, rot, SpinNone, nx != x
	case MoveCW, MoveCCW, MoveFlip:
		rx, ry, rrot, rok, kicked, kdx, kdy := applyExpanderMove(cf, kicks, shape, x, y, rot, mv)
		if !rok {
			return 0, 0, 0, SpinNone, false
		}
		from := int(rot) & 3
		to := int(rrot) & 3
		p := FallingPiece{X: rx, Y: ry, Rot: rrot, Shape: shape}
		var s Spin
		if shape != ShapeO {
			s = classifySpin(b, p, policy, from, to, kicked, kdx, kdy)
		}
		return rx, ry, rrot, s, true
	default:
		rx, ry, rrot, rok, _, _, _ := applyExpanderMove(cf, kicks, shape, x, y, rot, mv)
		return rx, ry, rrot, SpinNone, rok
	}
}
