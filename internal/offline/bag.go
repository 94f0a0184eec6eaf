package offline

import "math/rand"

// Bag is a shuffle-bag sampler: it deals every index of a fixed-size set
// exactly once in random order, then reshuffles and starts a new cycle.
// Unlike a uniform pick it cannot repeat an item until the whole set has
// been exhausted. Not safe for concurrent use; each session owns its bags.
type Bag struct {
	order []int
	pos   int
	rng   *rand.Rand
}

// NewBag creates a bag over indices [0, size). size must be positive.
func NewBag(size int, rng *rand.Rand) *Bag {
	b := &Bag{order: make([]int, size), rng: rng}
	for i := range b.order {
		b.order[i] = i
	}
	b.reshuffle()
	return b
}

// Next deals the next index, reshuffling when the cycle is exhausted.
func (b *Bag) Next() int {
	if b.pos >= len(b.order) {
		b.reshuffle()
	}
	idx := b.order[b.pos]
	b.pos++
	return idx
}

// Size returns the number of items in one full cycle.
func (b *Bag) Size() int { return len(b.order) }

func (b *Bag) reshuffle() {
	b.rng.Shuffle(len(b.order), func(i, j int) {
		b.order[i], b.order[j] = b.order[j], b.order[i]
	})
	b.pos = 0
}
