// Package bag implements the 7-bag piece randomizer specified for
// reproducible play: a Lehmer (multiplicative congruential) generator
// feeding a Fisher-Yates shuffle of each 7-piece cycle (spec.md §9).
package bag

import "github.com/tetrisbot/tetrisbot/internal/engine"

const (
	modulus    = 2147483647
	multiplier = 16807
	maxFloat   = 2147483646
)

// rng is the Lehmer generator. Its constants and update rule must match the
// host's exactly bit-for-bit, since both sides derive the same piece
// sequence from the same seed.
type rng struct {
	seed uint64
}

func newRNG(seed uint64) *rng {
	s := seed % modulus
	if s == 0 {
		s += maxFloat
	}
	return &rng{seed: s}
}

func (r *rng) next() uint64 {
	r.seed = (multiplier * r.seed) % modulus
	return r.seed
}

func (r *rng) nextFloat() float64 {
	return float64(r.next()-1) / float64(maxFloat)
}

// shuffle performs an in-place Fisher-Yates shuffle driven by r, scanning
// from the end exactly as the source does.
func (r *rng) shuffle(arr []engine.Shape) {
	for i := len(arr) - 1; i >= 1; i-- {
		j := int(r.nextFloat() * float64(i+1))
		arr[i], arr[j] = arr[j], arr[i]
	}
}

var bag7Cycle = [7]engine.Shape{
	engine.ShapeZ, engine.ShapeL, engine.ShapeO, engine.ShapeS,
	engine.ShapeI, engine.ShapeJ, engine.ShapeT,
}

// minQueueSize is the floor the source asserts on min_size.
const minQueueSize = 32

// Bag is a 7-bag randomizer: draws come out in shuffled groups of seven
// (each containing exactly one of each shape), refilled whenever the
// buffered queue runs low. It implements engine.Queue.
type Bag struct {
	rng     *rng
	minSize int
	queue   []engine.Shape
}

// NewBag seeds a new randomizer. initial lets the host pin a few pieces
// ahead of the generated cycles (e.g. pieces already shown to the player
// before the engine attached); minSize is raised to 32 if given lower.
func NewBag(seed uint64, minSize int, initial []engine.Shape) *Bag {
	if minSize < minQueueSize {
		minSize = minQueueSize
	}
	b := &Bag{rng: newRNG(seed), minSize: minSize, queue: make([]engine.Shape, 0, minSize+7)}
	b.queue = append(b.queue, initial...)
	b.refill()
	return b
}

func (b *Bag) refill() {
	for len(b.queue) < b.minSize {
		cycle := bag7Cycle
		b.rng.shuffle(cycle[:])
		b.queue = append(b.queue, cycle[:]...)
	}
}

// Next pops and returns the front piece, refilling as needed. Implements
// engine.Queue.
func (b *Bag) Next() engine.Shape {
	s := b.queue[0]
	b.queue = b.queue[1:]
	b.refill()
	return s
}

// Peek32 returns the next 32 upcoming pieces without consuming them,
// padding with ShapeI past the end of the buffered queue (spec.md §6 `init`
// preview, mirroring the source's get_front_32).
func (b *Bag) Peek32() [32]engine.Shape {
	var out [32]engine.Shape
	for i := range out {
		if i < len(b.queue) {
			out[i] = b.queue[i]
		} else {
			out[i] = engine.ShapeI
		}
	}
	return out
}
