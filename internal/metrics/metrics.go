// Package metrics implements the three independent corpus-to-scalar
// structural statistics used to score real and synthetic corpora: the
// coarsened-chain spectral gap (B1), the forbidden-pair violation count (B3),
// and the forward/backward bigram divergence (B5). All three work with
// bounded memory and never mutate their input corpus.
package metrics

// Metric names the structural statistics.
type Metric string

const (
	B1SpectralGap Metric = "B1"
	B3Violations  Metric = "B3"
	B5Divergence  Metric = "B5"
)

// All lists the metrics in reporting order.
func All() []Metric {
	return []Metric{B1SpectralGap, B3Violations, B5Divergence}
}
