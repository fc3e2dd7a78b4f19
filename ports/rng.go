package ports

import (
	"math/rand"
)

// RNG hands out deterministic random streams for instantiations. The seed
// derivation rule is owned by the implementation and must be fully specified
// so results are reproducible independent of execution order or worker count.
type RNG interface {
	// Instantiation returns the random source for one sampled corpus.
	Instantiation(baseSeed int64, index int) *rand.Rand
}
