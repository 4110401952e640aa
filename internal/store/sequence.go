package store

import "sync/atomic"

// Sequence provides monotonically increasing identifiers. Each store owns
// its own Sequence; values are never handed out twice, even after deletes.
type Sequence struct{ n atomic.Int64 }

// NewSequence returns a Sequence whose first Next call yields floor+1.
func NewSequence(floor int64) *Sequence {
	s := &Sequence{}
	s.n.Store(floor)
	return s
}

// Next returns the next identifier.
func (s *Sequence) Next() int64 { return s.n.Add(1) }

// Last returns the most recently allocated identifier, or the floor.
func (s *Sequence) Last() int64 { return s.n.Load() }
