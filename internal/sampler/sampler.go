package sampler

import (
	"fmt"
	"math/rand"

	"glyphchain/domain/corpus"
	"glyphchain/domain/model"
)

// Sampler synthesizes alternative corpora from one candidate model, matching
// the real corpus's line count, line-length profile, opener distribution, and
// per-class token frequencies. The random source is owned by the caller: the
// same seed and the same model reproduce byte-identical output.
type Sampler struct {
	model *model.CandidateModel
	stats *model.EmpiricalStats
	rng   *rand.Rand

	openerCum  []float64
	openerSum  float64
	rowCum     [][]float64
	rowSum     []float64
	tokenCum   map[corpus.ClassID][]float64
	tokenTotal map[corpus.ClassID]float64
}

// New precomputes cumulative tables for one model and one random stream.
func New(m *model.CandidateModel, stats *model.EmpiricalStats, rng *rand.Rand) *Sampler {
	s := &Sampler{
		model:      m,
		stats:      stats,
		rng:        rng,
		tokenCum:   make(map[corpus.ClassID][]float64, len(stats.TokenFreq)),
		tokenTotal: make(map[corpus.ClassID]float64, len(stats.TokenFreq)),
	}
	s.openerCum, s.openerSum = cumulative(stats.Openers)

	k := m.First.K()
	s.rowCum = make([][]float64, k)
	s.rowSum = make([]float64, k)
	for i := 0; i < k; i++ {
		s.rowCum[i], s.rowSum[i] = cumulative(m.First.Row(corpus.ClassID(i)))
	}

	for class, table := range stats.TokenFreq {
		weights := make([]float64, len(table))
		for i, tc := range table {
			weights[i] = float64(tc.Count)
		}
		s.tokenCum[class], s.tokenTotal[class] = cumulative(weights)
	}
	return s
}

// Corpus draws one full synthetic corpus: as many lines as the real corpus,
// each with a length drawn (with replacement) from the empirical line-length
// distribution.
func (s *Sampler) Corpus() *corpus.Corpus {
	out := &corpus.Corpus{Lines: make([]corpus.Line, 0, len(s.stats.LineLengths))}
	for i := range s.stats.LineLengths {
		length := s.stats.LineLengths[s.rng.Intn(len(s.stats.LineLengths))]
		out.Lines = append(out.Lines, s.line(i, length))
	}
	return out
}

// line draws one synthetic line of the given length.
func (s *Sampler) line(index, length int) corpus.Line {
	line := corpus.Line{
		Key:    fmt.Sprintf("syn.%05d", index),
		Tokens: make([]corpus.Token, 0, length),
	}
	var prev, cur corpus.ClassID
	for pos := 0; pos < length; pos++ {
		var next corpus.ClassID
		switch {
		case pos == 0:
			next = s.drawOpener()
		default:
			next = s.nextClass(prev, cur)
		}
		line.Tokens = append(line.Tokens, s.emit(next))
		prev, cur = cur, next
	}
	return line
}

// nextClass draws the successor of cur. Second-order models consult the
// (prev, cur) context first and fall back to the first-order row when the
// context was never observed. A degenerate row falls back to the opener
// distribution; that is the documented handling for classes with no observed
// outgoing transitions, not an error.
func (s *Sampler) nextClass(prev, cur corpus.ClassID) corpus.ClassID {
	if s.model.Second != nil {
		if row, ok := s.model.Second.Row(prev, cur); ok {
			cum, sum := cumulative(row)
			if sum > 0 {
				return corpus.ClassID(s.draw(cum, sum))
			}
		}
	}
	if !s.model.First.IsDegenerate(cur) && s.rowSum[cur] > 0 {
		return corpus.ClassID(s.draw(s.rowCum[cur], s.rowSum[cur]))
	}
	return s.drawOpener()
}

// drawOpener samples an opening class from the empirical opener distribution.
func (s *Sampler) drawOpener() corpus.ClassID {
	return corpus.ClassID(s.draw(s.openerCum, s.openerSum))
}

// emit realizes a class as a concrete token, frequency-weighted so rare
// tokens of a class stay rare in synthetic text.
func (s *Sampler) emit(class corpus.ClassID) corpus.Token {
	cum, ok := s.tokenCum[class]
	if !ok || s.tokenTotal[class] == 0 {
		// Only classes observed in the real corpus are ever drawn, so every
		// drawn class has a token table; re-drawing from the opener
		// distribution keeps the sampler total even if that changes.
		return s.emit(s.drawOpener())
	}
	idx := s.drawIndex(cum, s.tokenTotal[class])
	tc := s.stats.TokenFreq[class][idx]
	return corpus.Token{Text: tc.Text, Class: class, Middle: tc.Middle}
}

// draw samples an index from a cumulative weight table.
func (s *Sampler) draw(cum []float64, total float64) int {
	return s.drawIndex(cum, total)
}

func (s *Sampler) drawIndex(cum []float64, total float64) int {
	target := s.rng.Float64() * total
	for i, c := range cum {
		if target < c {
			return i
		}
	}
	return len(cum) - 1
}

// cumulative returns the running-sum table and total for a weight vector.
func cumulative(weights []float64) ([]float64, float64) {
	cum := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		total += w
		cum[i] = total
	}
	return cum, total
}
