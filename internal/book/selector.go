package book

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Selector picks uniformly among candidate moves. Weights are not used as
// probabilities.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector draws from src. Tests pass a seeded source for repeatable picks.
func NewSelector(src rand.Source) *Selector {
	return &Selector{rng: rand.New(src)}
}

// NewRandomSelector seeds from the clock and the runtime's random source.
func NewRandomSelector() *Selector {
	return NewSelector(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
}

// Pick returns one of moves.
func (s *Selector) Pick(moves []Move) (Move, error) {
	if len(moves) == 0 {
		return Move{}, ErrEmptyCandidates
	}
	return moves[s.intn(len(moves))], nil
}

// PickEntry returns one of entries.
func (s *Selector) PickEntry(entries []Entry) (Entry, error) {
	if len(entries) == 0 {
		return Entry{}, ErrEmptyCandidates
	}
	return entries[s.intn(len(entries))], nil
}

func (s *Selector) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
