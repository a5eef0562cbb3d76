package engine

// Queue supplies upcoming piece shapes to a GameState. The 7-bag randomizer
// in the bag package implements it; the engine never knows how pieces are
// generated.
type Queue interface {
	Next() Shape
}

// GarbageEntry is one pending incoming-garbage chunk (spec.md §4.8).
type GarbageEntry struct {
	HoleColumn     int
	Amount         int
	TurnsRemaining int
}

// GameState is the full mutable state of one running game: board, the piece
// under control, hold slot, preview buffer, chain counters, and pending
// garbage (spec.md §3, §4).
type GameState struct {
	Board    *Board
	Piece    FallingPiece
	Hold     *Shape
	Preview  []Shape
	queue    Queue
	Config   Config
	B2B      int16
	Combo    int16
	Garbage  []GarbageEntry
	LastSpin Spin
	CF       *CollisionField

	ToppedOut bool
}

// NewGameState starts a fresh game: an empty board, a first piece pulled
// from queue and spawned, and the next previewLen pieces pulled as lookahead.
func NewGameState(cfg Config, queue Queue, previewLen int) *GameState {
	preview := make([]Shape, previewLen+1)
	for i := range preview {
		preview[i] = queue.Next()
	}
	g := &GameState{
		Board:    NewBoard(),
		Piece:    Spawn(preview[0]),
		Preview:  preview[1:],
		queue:    queue,
		Config:   cfg,
		B2B:      -1,
		Combo:    -1,
		LastSpin: SpinNone,
	}
	g.rebuildCF()
	g.ToppedOut = ToppedOut(g.Board, g.Piece)
	return g
}

// Clone returns an independent copy of g: board, hold, preview, and garbage
// queue are all deep-copied so mutating the clone (e.g. via HardDrop) never
// touches g. Used to fan out search branches (spec.md §4.6).
func (g *GameState) Clone() *GameState {
	c := *g
	c.Board = g.Board.Clone()
	if g.Hold != nil {
		h := *g.Hold
		c.Hold = &h
	}
	c.Preview = append([]Shape(nil), g.Preview...)
	c.Garbage = append([]GarbageEntry(nil), g.Garbage...)
	c.CF = BuildCollisionField(c.Board, c.Piece.Shape)
	return &c
}

func (g *GameState) rebuildCF() {
	g.CF = BuildCollisionField(g.Board, g.Piece.Shape)
}

// pullNext spawns the next previewed piece. If a live queue is attached, the
// preview buffer is refilled from it to keep its length constant; a search
// branch (GameState.Clone with its queue cleared by the caller) instead lets
// the preview shrink by one, which naturally halts expansion once it knows
// no further ahead (spec.md §4.6).
func (g *GameState) pullNext() {
	next := g.Preview[0]
	if g.queue != nil {
		copy(g.Preview, g.Preview[1:])
		g.Preview[len(g.Preview)-1] = g.queue.Next()
	} else {
		g.Preview = g.Preview[1:]
	}
	g.Piece = Spawn(next)
	g.LastSpin = SpinNone
	g.rebuildCF()
	g.ToppedOut = ToppedOut(g.Board, g.Piece)
}

// HasNextPiece reports whether another piece is known (available in the
// preview buffer) to pull.
func (g *GameState) HasNextPiece() bool {
	return len(g.Preview) > 0
}

// MoveLeft shifts the piece one column left if unobstructed.
func (g *GameState) MoveLeft() bool { return g.shift(-1) }

// MoveRight shifts the piece one column right if unobstructed.
func (g *GameState) MoveRight() bool { return g.shift(1) }

func (g *GameState) shift(dx int) bool {
	nx := int(g.Piece.X) + dx
	if g.CF.Test(nx, int(g.Piece.Y), int(g.Piece.Rot)) {
		return false
	}
	g.Piece.X = int8(nx)
	g.LastSpin = SpinNone
	return true
}

// DasLeft slides the piece all the way left.
func (g *GameState) DasLeft() { g.das(-1) }

// DasRight slides the piece all the way right.
func (g *GameState) DasRight() { g.das(1) }

func (g *GameState) das(dx int) {
	for g.shift(dx) {
	}
}

// SoftDrop lowers the piece one row if unobstructed.
func (g *GameState) SoftDrop() bool {
	if g.CF.Test(int(g.Piece.X), int(g.Piece.Y)-1, int(g.Piece.Rot)) {
		return false
	}
	g.Piece.Y--
	g.LastSpin = SpinNone
	return true
}

// dropToFloor lowers the piece as far as it will go, without locking it.
func (g *GameState) dropToFloor() {
	for !g.CF.Test(int(g.Piece.X), int(g.Piece.Y)-1, int(g.Piece.Rot)) {
		g.Piece.Y--
	}
}

// Rotate attempts to turn the piece by delta rotation steps (1 for CW, -1
// or 3 for CCW), walking the configured kick table on collision (spec.md
// §4.4). It reports whether the rotation succeeded.
func (g *GameState) Rotate(delta int) bool {
	from := int(g.Piece.Rot) & 3
	to := (from + delta) & 3
	x, y := int(g.Piece.X), int(g.Piece.Y)

	if !collidesAt(g.Board, g.Piece.Shape, x, y, to) {
		g.Piece.Rot = int8(to)
		g.rebuildCF()
		g.LastSpin = classifySpin(g.Board, g.Piece, g.Config.Spins, from, to, false, 0, 0)
		return true
	}

	for _, k := range g.Config.Kicks.Kicks(g.Piece.Shape, from, to) {
		nx, ny := x+int(k.dx), y-int(k.dy)
		if collidesAt(g.Board, g.Piece.Shape, nx, ny, to) {
			continue
		}
		g.Piece.X, g.Piece.Y, g.Piece.Rot = int8(nx), int8(ny), int8(to)
		g.rebuildCF()
		g.LastSpin = classifySpin(g.Board, g.Piece, g.Config.Spins, from, to, true, k.dx, k.dy)
		return true
	}
	return false
}

// HoldSwap swaps the current piece into the hold slot, or, if the slot is
// empty, stashes the current piece and pulls the next queued one (spec.md
// §4.5). It reports whether a swap (not a first fill) happened.
func (g *GameState) HoldSwap() bool {
	if g.Hold == nil {
		cur := g.Piece.Shape
		g.Hold = &cur
		g.pullNext()
		return false
	}
	held := *g.Hold
	cur := g.Piece.Shape
	g.Hold = &cur
	g.Piece = Spawn(held)
	g.LastSpin = SpinNone
	g.rebuildCF()
	g.ToppedOut = ToppedOut(g.Board, g.Piece)
	return true
}

// HardDrop drops the piece to the floor, locks it, clears completed rows,
// settles combo/back-to-back/damage/garbage accounting, and pulls the next
// piece. It returns the number of lines cleared, the spin the piece locked
// with, and the damage (in garbage lines) sent to the opponent.
func (g *GameState) HardDrop() (linesCleared int, spin Spin, damageSent int) {
	g.dropToFloor()
	spin = g.LastSpin

	blocks := g.Piece.Blocks()
	minY, maxY := blocks[0][1], blocks[0][1]
	for _, blk := range blocks {
		g.Board.Set(blk[0], blk[1])
		if blk[1] < minY {
			minY = blk[1]
		}
		if blk[1] > maxY {
			maxY = blk[1]
		}
	}

	wasPerfect := false
	linesCleared, _ = g.Board.Clear(minY, maxY)
	if linesCleared > 0 {
		wasPerfect = g.Board.IsPerfectClear()
	}

	damageSent = g.settleDrop(linesCleared, spin, wasPerfect)
	if g.HasNextPiece() {
		g.pullNext()
	}
	return linesCleared, spin, damageSent
}

// settleDrop applies the back-to-back/combo update and the §4.8 damage
// formula, then exchanges the resulting damage against the incoming
// garbage FIFO (or decays it, on a non-clearing drop). It updates g.B2B and
// g.Combo first, per the back-to-back/combo update rule, and computes this
// drop's damage from the updated counters.
func (g *GameState) settleDrop(lines int, spin Spin, isPC bool) int {
	var brokenB2B int16
	broke := false

	if lines == 0 {
		g.Combo = -1
	} else {
		g.Combo++
		qualifies := spin != SpinNone || lines >= 4
		if qualifies {
			if isPC {
				g.B2B += int16(g.Config.PCB2B)
			} else {
				g.B2B++
			}
		} else {
			if g.B2B >= 0 {
				brokenB2B = g.B2B
				broke = true
			}
			g.B2B = -1
		}
	}

	if lines == 0 {
		g.decayGarbage()
		return 0
	}

	b2bForDamage := g.B2B
	if b2bForDamage < 0 {
		b2bForDamage = 0
	}
	comboForDamage := g.Combo
	if comboForDamage < 0 {
		comboForDamage = 0
	}

	damage := Damage(lines, spin, b2bForDamage, comboForDamage, g.Config)

	if isPC {
		damage += float64(g.Config.PCSend)
	}
	if broke && g.Config.B2BCharging && int(brokenB2B) > g.Config.B2BChargeAt {
		damage += float64(g.Config.B2BChargeBase)
	}
	if g.Config.GarbageSpecialBonus && spin != SpinNone {
		damage++
	}

	sent := int(damage)
	return g.applyOutgoingToIncoming(sent)
}

// applyOutgoingToIncoming cancels sent against the front of the incoming
// garbage FIFO and returns whatever remains to actually send out.
func (g *GameState) applyOutgoingToIncoming(sent int) int {
	for sent > 0 && len(g.Garbage) > 0 {
		front := &g.Garbage[0]
		if front.Amount <= sent {
			sent -= front.Amount
			g.Garbage = g.Garbage[1:]
		} else {
			front.Amount -= sent
			sent = 0
		}
	}
	return sent
}

// decayGarbage pops any incoming garbage whose timer has reached zero and
// inserts it into the board, then ticks down the rest (spec.md §4.8).
func (g *GameState) decayGarbage() {
	i := 0
	for i < len(g.Garbage) && g.Garbage[i].TurnsRemaining == 0 {
		g.Board.InsertGarbage(g.Garbage[i].Amount, g.Garbage[i].HoleColumn)
		i++
	}
	g.Garbage = g.Garbage[i:]
	for j := range g.Garbage {
		if g.Garbage[j].TurnsRemaining > 0 {
			g.Garbage[j].TurnsRemaining--
		}
	}
}

// AddGarbage enqueues an incoming garbage chunk (the host's
// insert_garbage message, spec.md §6).
func (g *GameState) AddGarbage(amount, holeColumn, turns int) {
	g.Garbage = append(g.Garbage, GarbageEntry{HoleColumn: holeColumn, Amount: amount, TurnsRemaining: turns})
}
