// Package idgen provides identifier generation decoupled from storage, so
// stores can swap between sequential and random identifiers.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces unique identifiers.
type Generator interface {
	Next() string
}

// Sequence issues monotonically increasing decimal identifiers. Safe for
// concurrent use.
type Sequence struct {
	n atomic.Int64
}

// NewSequence returns a Sequence whose first Next() yields start.
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.n.Store(start - 1)
	return s
}

func (s *Sequence) Next() string {
	return strconv.FormatInt(s.n.Add(1), 10)
}

// UUID issues random version-4 UUID identifiers.
type UUID struct{}

func (UUID) Next() string {
	return uuid.NewString()
}
