package engine

const (
	expanderMaxResults = 512
	expanderBitWords   = 131072 / 64
)

// ExpanderResult is one distinct resting pose reachable from a piece's spawn
// position (spec.md §4.5).
type ExpanderResult struct {
	X, Y, Rot int8
	Spin      Spin
}

type expanderBitset struct {
	words [expanderBitWords]uint64
}

func (bs *expanderBitset) test(i int) bool {
	return bs.words[i>>6]&(1<<uint(i&63)) != 0
}

func (bs *expanderBitset) set(i int) {
	bs.words[i>>6] |= 1 << uint(i&63)
}

func poseKey(x, y, rot int) int {
	return x | (y << 4) | (rot << 10)
}

func resultKey(x, y, rot int, spin Spin) int {
	return x | (y << 4) | (rot << 10) | (int(spin) << 12)
}

type expanderQueueEntry struct {
	x, y, rot int8
	spin      Spin
	lastMove  Move
}

// applyExpanderMove computes the pose mv leads to from (x, y, rot), testing
// against cf (built for shape, valid at every rotation). ok reports whether
// the move is legal; kicked/kdx/kdy describe the kick used by a rotation,
// for spin classification.
func applyExpanderMove(cf *CollisionField, kicks KickFamily, shape Shape, x, y, rot int8, mv Move) (nx, ny, nrot int8, ok, kicked bool, kdx, kdy int8) {
	switch mv {
	case MoveLeft:
		nx, ny, nrot = x-1, y, rot
		return nx, ny, nrot, !cf.Test(int(nx), int(ny), int(nrot)), false, 0, 0
	case MoveRight:
		nx, ny, nrot = x+1, y, rot
		return nx, ny, nrot, !cf.Test(int(nx), int(ny), int(nrot)), false, 0, 0
	case MoveSoftDrop:
		nx, ny, nrot = x, y-1, rot
		return nx, ny, nrot, !cf.Test(int(nx), int(ny), int(nrot)), false, 0, 0
	case MoveCW, MoveCCW, MoveFlip:
		delta := 1
		switch mv {
		case MoveCCW:
			delta = 3
		case MoveFlip:
			delta = 2
		}
		from := int(rot) & 3
		to := (from + delta) & 3
		if !cf.Test(int(x), int(y), to) {
			return x, y, int8(to), true, false, 0, 0
		}
		for _, k := range kicks.Kicks(shape, from, to) {
			tx, ty := int(x)+int(k.dx), int(y)-int(k.dy)
			if !cf.Test(tx, ty, to) {
				return int8(tx), int8(ty), int8(to), true, true, k.dx, k.dy
			}
		}
		return 0, 0, 0, false, false, 0, 0
	default:
		return 0, 0, 0, false, false, 0, 0
	}
}

// Expand enumerates every distinct resting pose reachable from start via the
// reduced move alphabet of spec.md §4.5, breadth-first over board b and its
// precomputed collision field cf. At most 512 results are returned; the
// search also stops once the queue drains.
func Expand(b *Board, cf *CollisionField, kicks KickFamily, shape Shape, policy SpinPolicy, start FallingPiece) []ExpanderResult {
	var visited, resultSeen expanderBitset
	results := make([]ExpanderResult, 0, expanderMaxResults)

	queue := make([]expanderQueueEntry, 0, 256)
	startRot := start.Rot
	if shape == ShapeO {
		startRot = 0
	}
	queue = append(queue, expanderQueueEntry{start.X, start.Y, startRot, SpinNone, MoveNone})
	visited.set(resultKey(int(start.X), int(start.Y), int(startRot), SpinNone))

	emit := func(x, y, rot int8, spin Spin) {
		if len(results) >= expanderMaxResults {
			return
		}
		k := resultKey(int(x), int(y), int(rot), spin)
		if resultSeen.test(k) {
			return
		}
		resultSeen.set(k)
		results = append(results, ExpanderResult{X: x, Y: y, Rot: rot, Spin: spin})
	}

	for qi := 0; qi < len(queue) && len(results) < expanderMaxResults; qi++ {
		cur := queue[qi]
		x, y, rot := cur.x, cur.y, cur.rot

		if cf.Test(int(x), int(y)-1, int(rot)) {
			emit(x, y, rot, cur.spin)
		}

		for _, mv := range expanderMoves {
			if expanderForbidden(cur.lastMove, mv) {
				continue
			}
			nx, ny, nrot, ok, kicked, kdx, kdy := applyExpanderMove(cf, kicks, shape, x, y, rot, mv)
			if !ok {
				continue
			}
			if shape == ShapeO {
				nrot = 0
			}
			var nspin Spin
			switch mv {
			case MoveCW, MoveCCW, MoveFlip:
				if shape != ShapeO {
					p := FallingPiece{X: nx, Y: ny, Rot: nrot, Shape: shape}
					nspin = classifySpin(b, p, policy, int(rot)&3, int(nrot)&3, kicked, kdx, kdy)
				}
			default:
				nspin = SpinNone
			}
			pk := resultKey(int(nx), int(ny), int(nrot), nspin)
			if visited.test(pk) {
				continue
			}
			visited.set(pk)
			queue = append(queue, expanderQueueEntry{nx, ny, nrot, nspin, mv})
		}
	}

	return results
}
