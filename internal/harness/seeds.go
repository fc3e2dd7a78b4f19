package harness

import (
	"math/rand"
)

// SeedSequence derives per-instantiation random streams by the documented
// rule seed = base + index. The rule makes results reproducible independent
// of execution order or worker count.
type SeedSequence struct{}

// Instantiation returns the random source for one sampled corpus.
func (SeedSequence) Instantiation(baseSeed int64, index int) *rand.Rand {
	return rand.New(rand.NewSource(baseSeed + int64(index)))
}
