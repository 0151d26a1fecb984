package tetris

import (
	"math/rand/v2"
	"slices"
)

// Queue is the upcoming-piece stream. It is replenished one bag at a time,
// where a bag is a uniformly shuffled permutation of PieceTypes.
type Queue struct {
	types   []PieceType
	preview int
	rng     *rand.Rand
	bags    int
}

// NewQueue creates an empty queue that keeps at least preview+1 entries
// available for every draw. A nil rng falls back to the global source.
func NewQueue(preview int, rng *rand.Rand) *Queue {
	return &Queue{
		types:   make([]PieceType, 0, 2*len(PieceTypes)),
		preview: preview,
		rng:     rng,
	}
}

// Refill appends one shuffled bag.
func (q *Queue) Refill() {
	bag := PieceTypes
	shuffle := rand.Shuffle
	if q.rng != nil {
		shuffle = q.rng.Shuffle
	}
	shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	q.types = append(q.types, bag[:]...)
	q.bags++
}

// Next removes and returns the front of the queue, refilling first so the
// preview stays full after the draw.
func (q *Queue) Next() PieceType {
	for len(q.types) < q.preview+1 {
		q.Refill()
	}
	next := q.types[0]
	q.types = slices.Delete(q.types, 0, 1)
	return next
}

// Peek returns up to n upcoming types without consuming them.
func (q *Queue) Peek(n int) []PieceType {
	if n <= 0 {
		return nil
	}
	n = min(n, len(q.types))
	return slices.Clone(q.types[:n])
}

// Len returns the number of queued types.
func (q *Queue) Len() int {
	return len(q.types)
}

// Bags returns how many bags have been appended since creation or Clear.
func (q *Queue) Bags() int {
	return q.bags
}

// Clear drops every queued type.
func (q *Queue) Clear() {
	q.types = q.types[:0]
	q.bags = 0
}
