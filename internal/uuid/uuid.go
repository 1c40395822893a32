// uuid simple generator that allows mocking
package uuid

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator is an interface for generating unique IDs
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// SequentialGenerator generates predictable IDs for tests and replays
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequentialGenerator creates a generator producing prefix_1, prefix_2, ...
func NewSequentialGenerator(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// New returns the next sequential ID
func (g *SequentialGenerator) New() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix == "" {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s_%d", g.prefix, n)
}
