package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"glyphchain/domain/corpus"
)

// ForwardBackwardJSD computes B5: the Jensen-Shannon divergence, in bits,
// between the flattened forward class-bigram distribution and the reverse
// distribution obtained by reversing every line and re-counting. Near-zero
// divergence means the process looks statistically time-reversible. The
// result is symmetric in the two operands and bounded in [0, 1].
func ForwardBackwardJSD(c *corpus.Corpus, k int) float64 {
	forward := make([]float64, k*k)
	reverse := make([]float64, k*k)
	for _, line := range c.Lines {
		n := len(line.Tokens)
		for i := 0; i+1 < n; i++ {
			a := int(line.Tokens[i].Class)
			b := int(line.Tokens[i+1].Class)
			forward[a*k+b]++
			// Reversing the line turns the pair (a,b) into (b,a).
			reverse[b*k+a]++
		}
	}
	return JensenShannon(forward, reverse)
}

// JensenShannon normalizes two non-negative weight vectors and returns their
// Jensen-Shannon divergence in bits. Two empty vectors diverge by zero.
func JensenShannon(p, q []float64) float64 {
	pn := normalize(p)
	qn := normalize(q)
	if pn == nil || qn == nil {
		return 0
	}
	m := make([]float64, len(pn))
	for i := range m {
		m[i] = 0.5 * (pn[i] + qn[i])
	}
	jsd := 0.5*stat.KullbackLeibler(pn, m) + 0.5*stat.KullbackLeibler(qn, m)
	jsd /= math.Ln2
	if jsd < 0 {
		jsd = 0
	}
	if jsd > 1 {
		jsd = 1
	}
	return jsd
}

// normalize returns the distribution form of a weight vector, or nil when
// the vector carries no mass.
func normalize(w []float64) []float64 {
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	if sum == 0 {
		return nil
	}
	out := make([]float64, len(w))
	for i, v := range w {
		out[i] = v / sum
	}
	return out
}
