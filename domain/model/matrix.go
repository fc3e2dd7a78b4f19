package model

import (
	"glyphchain/domain/corpus"
)

// CountMatrix is a square, non-negative class-by-class transition count table.
// Row and column index 0 is the reserved unclassified slot and stays empty.
type CountMatrix struct {
	k     int
	cells [][]float64
}

// NewCountMatrix creates a k-by-k zero matrix.
func NewCountMatrix(k int) *CountMatrix {
	cells := make([][]float64, k)
	for i := range cells {
		cells[i] = make([]float64, k)
	}
	return &CountMatrix{k: k, cells: cells}
}

// K returns the matrix dimension.
func (m *CountMatrix) K() int { return m.k }

// Inc increments the count for the (from, to) transition.
func (m *CountMatrix) Inc(from, to corpus.ClassID) {
	m.cells[from][to]++
}

// At returns the count for the (from, to) transition.
func (m *CountMatrix) At(from, to corpus.ClassID) float64 {
	return m.cells[from][to]
}

// Set overwrites the count for the (from, to) transition.
func (m *CountMatrix) Set(from, to corpus.ClassID, v float64) {
	m.cells[from][to] = v
}

// RowSum returns the total outgoing count for a class.
func (m *CountMatrix) RowSum(from corpus.ClassID) float64 {
	sum := 0.0
	for _, v := range m.cells[from] {
		sum += v
	}
	return sum
}

// Clone returns a deep copy.
func (m *CountMatrix) Clone() *CountMatrix {
	out := NewCountMatrix(m.k)
	for i := range m.cells {
		copy(out.cells[i], m.cells[i])
	}
	return out
}

// StochasticMatrix is the row-normalized form of a count matrix. Every row
// either sums to 1 or is all-zero; all-zero rows are flagged as degenerate
// and require the opener-distribution fallback at sampling time.
type StochasticMatrix struct {
	k          int
	rows       [][]float64
	degenerate []bool
}

// Normalize derives a row-stochastic matrix from raw counts. Rows with zero
// sum are left all-zero and flagged rather than treated as an error.
func Normalize(counts *CountMatrix) *StochasticMatrix {
	k := counts.K()
	sm := &StochasticMatrix{
		k:          k,
		rows:       make([][]float64, k),
		degenerate: make([]bool, k),
	}
	for i := 0; i < k; i++ {
		row := make([]float64, k)
		sum := counts.RowSum(corpus.ClassID(i))
		if sum == 0 {
			sm.degenerate[i] = true
			sm.rows[i] = row
			continue
		}
		for j := 0; j < k; j++ {
			row[j] = counts.At(corpus.ClassID(i), corpus.ClassID(j)) / sum
		}
		sm.rows[i] = row
	}
	return sm
}

// K returns the matrix dimension.
func (sm *StochasticMatrix) K() int { return sm.k }

// Row returns the probability row for a source class. Callers must not
// mutate the returned slice.
func (sm *StochasticMatrix) Row(from corpus.ClassID) []float64 {
	return sm.rows[from]
}

// At returns the transition probability for the (from, to) pair.
func (sm *StochasticMatrix) At(from, to corpus.ClassID) float64 {
	return sm.rows[from][to]
}

// IsDegenerate reports whether a source class has no outgoing mass.
func (sm *StochasticMatrix) IsDegenerate(from corpus.ClassID) bool {
	return sm.degenerate[from]
}

// Stationary estimates the stationary distribution of the chain by power
// iteration from the uniform start. Degenerate rows are treated as uniform
// so the iteration stays a proper distribution.
func (sm *StochasticMatrix) Stationary(iterations int) []float64 {
	k := sm.k
	pi := make([]float64, k)
	for i := range pi {
		pi[i] = 1.0 / float64(k)
	}
	next := make([]float64, k)
	uniform := 1.0 / float64(k)
	for it := 0; it < iterations; it++ {
		for j := range next {
			next[j] = 0
		}
		for i := 0; i < k; i++ {
			if pi[i] == 0 {
				continue
			}
			if sm.degenerate[i] {
				for j := 0; j < k; j++ {
					next[j] += pi[i] * uniform
				}
				continue
			}
			for j := 0; j < k; j++ {
				next[j] += pi[i] * sm.rows[i][j]
			}
		}
		pi, next = next, pi
	}
	return pi
}
