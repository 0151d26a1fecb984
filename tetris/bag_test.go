package tetris

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueBagFairness(t *testing.T) {
	q := NewQueue(3, rand.New(rand.NewPCG(1, 2)))

	const bags = 200
	draws := make([]PieceType, 0, bags*len(PieceTypes))
	for range bags * len(PieceTypes) {
		draws = append(draws, q.Next())
	}

	for start := 0; start < len(draws); start += len(PieceTypes) {
		window := slices.Clone(draws[start : start+len(PieceTypes)])
		slices.Sort(window)
		if !slices.Equal(window, PieceTypes[:]) {
			t.Fatalf("bag starting at draw %d is not a permutation: %v", start, draws[start:start+len(PieceTypes)])
		}
	}
}

func TestQueueRepeatDistance(t *testing.T) {
	q := NewQueue(0, rand.New(rand.NewPCG(3, 4)))

	last := map[PieceType]int{}
	for i := range 7 * 500 {
		typ := q.Next()
		if prev, ok := last[typ]; ok {
			// two occurrences are at most one bag boundary apart
			assert.LessOrEqual(t, i-prev, 2*len(PieceTypes)-1)
		}
		last[typ] = i
	}
}

func TestQueueKeepsLookahead(t *testing.T) {
	q := NewQueue(3, rand.New(rand.NewPCG(5, 6)))
	assert.Equal(t, 0, q.Len())

	for range 50 {
		q.Next()
		assert.GreaterOrEqual(t, q.Len(), 3, "preview stays full after each draw")
	}
}

func TestQueuePeek(t *testing.T) {
	q := NewQueue(3, rand.New(rand.NewPCG(7, 8)))
	q.Refill()

	peeked := q.Peek(3)
	assert.Len(t, peeked, 3)
	assert.Equal(t, peeked[0], q.Next())
	assert.Equal(t, peeked[1:], q.Peek(2))

	assert.Nil(t, q.Peek(0))
	assert.Len(t, q.Peek(100), q.Len())
}

func TestQueueSeededDeterminism(t *testing.T) {
	a := NewQueue(3, rand.New(rand.NewPCG(42, 42)))
	b := NewQueue(3, rand.New(rand.NewPCG(42, 42)))

	for range 70 {
		assert.Equal(t, a.Next(), b.Next())
	}
	assert.Equal(t, a.Bags(), b.Bags())
}

func TestQueueClear(t *testing.T) {
	q := NewQueue(3, nil)
	q.Refill()
	q.Refill()

	q.Clear()

	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, q.Bags())
	assert.NotEqual(t, Empty, q.Next(), "global source fallback")
}
