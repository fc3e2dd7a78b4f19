package metrics

import (
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"

	"glyphchain/domain/corpus"
)

// SpectralGap computes B1: aggregate the class-level line transitions into
// the role partition, row-normalize, and return 1 minus the magnitude of the
// second-largest eigenvalue. A larger gap means faster mixing and less
// persistent structure. A macro-state matrix with fewer than 2 reachable
// states returns the boundary value 1.0 rather than failing.
func SpectralGap(c *corpus.Corpus, part *corpus.Partition) float64 {
	n := part.Size()
	counts := make([][]float64, n)
	for i := range counts {
		counts[i] = make([]float64, n)
	}
	seen := make([]bool, n)

	for _, line := range c.Lines {
		for i := 0; i+1 < len(line.Tokens); i++ {
			from := part.Index(part.RoleOf(line.Tokens[i].Class))
			to := part.Index(part.RoleOf(line.Tokens[i+1].Class))
			counts[from][to]++
			seen[from], seen[to] = true, true
		}
	}

	reachable := make([]int, 0, n)
	for i, ok := range seen {
		if ok {
			reachable = append(reachable, i)
		}
	}
	if len(reachable) < 2 {
		return 1.0
	}

	// Row-normalize over the reachable submatrix. A reachable state with no
	// outgoing mass becomes absorbing so the chain stays stochastic.
	r := len(reachable)
	dense := mat.NewDense(r, r, nil)
	for ri, i := range reachable {
		sum := 0.0
		for _, j := range reachable {
			sum += counts[i][j]
		}
		if sum == 0 {
			dense.Set(ri, ri, 1.0)
			continue
		}
		for rj, j := range reachable {
			dense.Set(ri, rj, counts[i][j]/sum)
		}
	}

	var eig mat.Eigen
	if !eig.Factorize(dense, mat.EigenNone) {
		// Numerically degenerate factorization: report the boundary gap.
		return 1.0
	}
	values := eig.Values(nil)
	mags := make([]float64, len(values))
	for i, v := range values {
		mags[i] = cmplx.Abs(v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(mags)))

	gap := 1.0 - mags[1]
	if gap < 0 {
		gap = 0
	}
	if gap > 1 {
		gap = 1
	}
	return gap
}
