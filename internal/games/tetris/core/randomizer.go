package core

import (
	"fmt"
	"math/rand"
)

// Randomizer supplies the type of each new piece.
type Randomizer interface {
	Next() PieceType
}

// UniformRandomizer draws every piece independently and uniformly from the
// seven types.
type UniformRandomizer struct {
	rng *rand.Rand
}

// NewUniformRandomizer creates a seeded uniform randomizer. The same seed
// always produces the same sequence.
func NewUniformRandomizer(seed int64) *UniformRandomizer {
	return &UniformRandomizer{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a type in [PieceI, PieceZ].
func (r *UniformRandomizer) Next() PieceType {
	return PieceType(r.rng.Intn(PieceCount) + 1)
}

// QueueRandomizer replays a fixed list of types. Once exhausted it keeps
// returning the fallback type. Useful for scripted games and tests.
type QueueRandomizer struct {
	queue    []PieceType
	fallback PieceType
}

// NewQueueRandomizer creates a randomizer that yields types in order.
func NewQueueRandomizer(types ...PieceType) *QueueRandomizer {
	return &QueueRandomizer{queue: types, fallback: PieceO}
}

// Next pops the next queued type.
func (q *QueueRandomizer) Next() PieceType {
	if len(q.queue) == 0 {
		return q.fallback
	}
	t := q.queue[0]
	q.queue = q.queue[1:]
	return t
}

// draw pulls a piece from r and fails fast on an invalid type.
func draw(r Randomizer) Piece {
	t := r.Next()
	if !t.Valid() {
		panic(fmt.Sprintf("tetris: randomizer returned invalid piece type %d", t))
	}
	return NewPiece(t)
}
