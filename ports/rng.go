package ports

import (
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(name string, seed int64) *rand.Rand

	// ChainStream creates the RNG for one imputation chain. The stream must
	// depend only on the session seed and the chain index so that chains
	// stay independent and bit-for-bit reproducible.
	ChainStream(sessionSeed int64, chainIndex int) *rand.Rand
}
