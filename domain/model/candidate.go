package model

import (
	"fmt"

	"glyphchain/domain/corpus"
)

// Variant names the modification applied to the raw transition counts.
type Variant string

const (
	VariantBaseline       Variant = "baseline"
	VariantAsymmetric     Variant = "asymmetric-suppression"
	VariantSymmetric      Variant = "symmetric-suppression"
	VariantBlendedReverse Variant = "blended-reverse"
	VariantSecondOrder    Variant = "second-order"
)

// stationaryIterations bounds the power iteration used by the blended-reverse
// construction. K is small (order 50), so convergence is fast.
const stationaryIterations = 200

// CandidateModel is one named, immutable generative configuration: a
// first-order stochastic matrix, an optional second-order table, the
// forbidden set that was applied, and suppression bookkeeping.
type CandidateModel struct {
	Name        string
	Variant     Variant
	First       *StochasticMatrix
	Second      *SecondOrderTable
	Forbidden   *ForbiddenPairSet
	ZeroedCells int
}

// suppress copies the raw counts and zeroes every cell named by the forbidden
// set, returning the modified counts and how many nonzero cells were cleared.
func suppress(raw *CountMatrix, set *ForbiddenPairSet) (*CountMatrix, int) {
	counts := raw.Clone()
	zeroed := 0
	if set == nil {
		return counts, 0
	}
	for _, p := range set.Pairs() {
		if int(p.From) >= counts.K() || int(p.To) >= counts.K() {
			continue
		}
		if counts.At(p.From, p.To) > 0 {
			zeroed++
		}
		counts.Set(p.From, p.To, 0)
	}
	return counts, zeroed
}

// NewBaseline builds the unsuppressed first-order model.
func NewBaseline(stats *EmpiricalStats) *CandidateModel {
	return &CandidateModel{
		Name:    "baseline",
		Variant: VariantBaseline,
		First:   Normalize(stats.Transitions),
	}
}

// NewSuppressed builds a first-order model with the given forbidden set
// zeroed out of the raw counts before row normalization.
func NewSuppressed(name string, variant Variant, stats *EmpiricalStats, set *ForbiddenPairSet) *CandidateModel {
	counts, zeroed := suppress(stats.Transitions, set)
	return &CandidateModel{
		Name:        name,
		Variant:     variant,
		First:       Normalize(counts),
		Forbidden:   set,
		ZeroedCells: zeroed,
	}
}

// NewBlendedReverse mixes the suppressed forward matrix with its time
// reversal at the given forward weight. The reversal comes from the
// stationary distribution via Bayes' rule:
//
//	reverse(i,j) = forward(j,i) * pi(j) / pi(i)
//
// After mixing, forbidden cells and cells outside the raw support are
// re-zeroed so the support contract holds, then rows are renormalized.
func NewBlendedReverse(stats *EmpiricalStats, set *ForbiddenPairSet, forwardWeight float64) *CandidateModel {
	suppressed, zeroed := suppress(stats.Transitions, set)
	forward := Normalize(suppressed)
	pi := forward.Stationary(stationaryIterations)
	k := forward.K()

	reverse := NewCountMatrix(k)
	for i := 0; i < k; i++ {
		if pi[i] == 0 {
			continue
		}
		for j := 0; j < k; j++ {
			reverse.Set(corpus.ClassID(i), corpus.ClassID(j),
				forward.At(corpus.ClassID(j), corpus.ClassID(i))*pi[j]/pi[i])
		}
	}
	reversed := Normalize(reverse)

	blended := NewCountMatrix(k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			from, to := corpus.ClassID(i), corpus.ClassID(j)
			// The reversal can reintroduce mass on forbidden or unobserved
			// cells; those stay zero.
			if set.Contains(from, to) || stats.Transitions.At(from, to) == 0 {
				continue
			}
			v := forwardWeight*forward.At(from, to) + (1-forwardWeight)*reversed.At(from, to)
			blended.Set(from, to, v)
		}
	}
	return &CandidateModel{
		Name:        fmt.Sprintf("blended-reverse-%.2f", forwardWeight),
		Variant:     VariantBlendedReverse,
		First:       Normalize(blended),
		Forbidden:   set,
		ZeroedCells: zeroed,
	}
}

// stateKey is a (previous class, current class) context.
type stateKey struct {
	Prev corpus.ClassID
	Cur  corpus.ClassID
}

// SecondOrderTable maps observed (prev, cur) contexts to a next-class
// distribution. Unobserved contexts fall back to the first-order matrix.
type SecondOrderTable struct {
	k    int
	rows map[stateKey][]float64
}

// Row returns the next-class distribution for a context and whether the
// context was observed in the real corpus.
func (t *SecondOrderTable) Row(prev, cur corpus.ClassID) ([]float64, bool) {
	row, ok := t.rows[stateKey{Prev: prev, Cur: cur}]
	return row, ok
}

// Contexts returns the number of observed (prev, cur) contexts.
func (t *SecondOrderTable) Contexts() int { return len(t.rows) }

// NewSecondOrder builds the second-order model from the corpus itself:
// counts of (prev, cur) -> next within each line, with suppression applied
// conditionally on the current class, plus the suppressed first-order matrix
// as fallback for unobserved contexts.
func NewSecondOrder(c *corpus.Corpus, stats *EmpiricalStats, set *ForbiddenPairSet) *CandidateModel {
	k := stats.K
	counts := make(map[stateKey][]float64)
	for _, line := range c.Lines {
		for i := 2; i < len(line.Tokens); i++ {
			key := stateKey{Prev: line.Tokens[i-2].Class, Cur: line.Tokens[i-1].Class}
			row := counts[key]
			if row == nil {
				row = make([]float64, k)
				counts[key] = row
			}
			row[line.Tokens[i].Class]++
		}
	}

	table := &SecondOrderTable{k: k, rows: make(map[stateKey][]float64, len(counts))}
	for key, row := range counts {
		sum := 0.0
		for next := 0; next < k; next++ {
			if set.Contains(key.Cur, corpus.ClassID(next)) {
				row[next] = 0
			}
			sum += row[next]
		}
		if sum == 0 {
			// Fully suppressed context; the sampler falls back to first order.
			continue
		}
		for next := range row {
			row[next] /= sum
		}
		table.rows[key] = row
	}

	first := NewSuppressed("second-order", VariantSecondOrder, stats, set)
	first.Second = table
	return first
}

// CheckSupport verifies the hard modifier contract: the model's nonzero
// first-order support is a subset of the raw support minus the applied
// forbidden set.
func (m *CandidateModel) CheckSupport(raw *CountMatrix) error {
	k := m.First.K()
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			from, to := corpus.ClassID(i), corpus.ClassID(j)
			if m.First.At(from, to) == 0 {
				continue
			}
			if raw.At(from, to) == 0 {
				return fmt.Errorf("model %s has mass on unobserved transition (%d,%d)", m.Name, i, j)
			}
			if m.Forbidden.Contains(from, to) {
				return fmt.Errorf("model %s has mass on forbidden transition (%d,%d)", m.Name, i, j)
			}
		}
	}
	return nil
}
