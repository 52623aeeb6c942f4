package game

import (
	"math/rand"
	"time"
)

// Rand is the engine's only source of nondeterminism. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Engine applies the rules. It holds no game state between calls; every
// method takes a GameState and returns a new one.
type Engine struct {
	rng Rand
}

// New creates an engine drawing from rng. A nil rng is seeded from the clock.
func New(rng Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// NewSeeded creates an engine with a deterministic math/rand source.
// Seed 0 means seed from the clock.
func NewSeeded(seed int64) *Engine {
	if seed == 0 {
		return New(nil)
	}
	return New(rand.New(rand.NewSource(seed)))
}

// Rand exposes the engine's random source so collaborators (the CPU
// heuristic) share one stream.
func (e *Engine) Rand() Rand {
	return e.rng
}
