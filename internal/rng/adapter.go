package rng

import (
	"hash/fnv"
	"math/rand"
)

// Adapter implements ports.RNGPort with plain seeded math/rand streams.
// Streams are cheap to create and never shared, so every operation and
// every chain gets its own generator.
type Adapter struct{}

// NewAdapter creates the default RNG adapter
func NewAdapter() *Adapter {
	return &Adapter{}
}

// SeededStream creates a deterministic generator for a named operation. The
// name is folded into the seed so differently-named streams with the same
// base seed do not collide.
func (a *Adapter) SeededStream(name string, seed int64) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(name))
	return rand.New(rand.NewSource(seed ^ int64(h.Sum64())))
}

// ChainStream derives a chain's generator as sessionSeed + chainIndex.
// The offset keeps chains independent while staying reproducible from the
// single session seed.
func (a *Adapter) ChainStream(sessionSeed int64, chainIndex int) *rand.Rand {
	return rand.New(rand.NewSource(sessionSeed + int64(chainIndex)))
}
