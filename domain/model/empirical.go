package model

import (
	"sort"

	"glyphchain/domain/corpus"
)

// TokenCount pairs a surface form (and its morphological core) with its
// observed frequency within a class.
type TokenCount struct {
	Text   string
	Middle string
	Count  int
}

// ClassAudit summarizes the observation volume behind one class's statistics.
type ClassAudit struct {
	Class        corpus.ClassID
	Observations int
	Insufficient bool
}

// EmpiricalStats holds everything the modifier and sampler need from the real
// corpus: raw transition counts, opener counts, the empirical line-length
// profile, and frequency-ordered per-class token tables. Immutable after
// construction; safe to share across parallel instantiations.
type EmpiricalStats struct {
	K           int
	Transitions *CountMatrix
	Openers     []float64
	LineLengths []int
	TokenFreq   map[corpus.ClassID][]TokenCount
}

// BuildEmpirical scans a classified, line-segmented corpus. For each line the
// first token's class increments the opener count and each adjacent pair
// increments the transition count. No cross-line transitions are counted.
// A class with zero observed outgoing transitions yields an all-zero row;
// that is a valid degenerate state, not an error.
func BuildEmpirical(c *corpus.Corpus) *EmpiricalStats {
	k := int(c.MaxClass()) + 1
	if k < 1 {
		k = 1
	}
	stats := &EmpiricalStats{
		K:           k,
		Transitions: NewCountMatrix(k),
		Openers:     make([]float64, k),
		LineLengths: make([]int, 0, len(c.Lines)),
		TokenFreq:   make(map[corpus.ClassID][]TokenCount),
	}

	freq := make(map[corpus.ClassID]map[string]int)
	middles := make(map[string]string)
	for _, line := range c.Lines {
		if len(line.Tokens) == 0 {
			continue
		}
		stats.LineLengths = append(stats.LineLengths, len(line.Tokens))
		stats.Openers[line.Tokens[0].Class]++
		for i, tok := range line.Tokens {
			byText := freq[tok.Class]
			if byText == nil {
				byText = make(map[string]int)
				freq[tok.Class] = byText
			}
			byText[tok.Text]++
			middles[tok.Text] = tok.Middle
			if i+1 < len(line.Tokens) {
				stats.Transitions.Inc(tok.Class, line.Tokens[i+1].Class)
			}
		}
	}

	// Frequency-ordered tables give the sampler a deterministic cumulative
	// scan independent of map iteration order.
	for class, byText := range freq {
		table := make([]TokenCount, 0, len(byText))
		for text, count := range byText {
			table = append(table, TokenCount{Text: text, Middle: middles[text], Count: count})
		}
		sort.Slice(table, func(i, j int) bool {
			if table[i].Count != table[j].Count {
				return table[i].Count > table[j].Count
			}
			return table[i].Text < table[j].Text
		})
		stats.TokenFreq[class] = table
	}
	return stats
}

// Audit reports per-class observation volume against a minimum threshold.
// Observations are token occurrences, so a class seen only line-finally still
// gets audited. Classes below the threshold are flagged as insufficient for
// per-class-level statistics; they stay in the model, the flag only scopes
// reporting.
func (s *EmpiricalStats) Audit(minObservations int) []ClassAudit {
	audits := make([]ClassAudit, 0, s.K)
	for class := 1; class < s.K; class++ {
		obs := 0
		for _, tc := range s.TokenFreq[corpus.ClassID(class)] {
			obs += tc.Count
		}
		if obs == 0 {
			continue
		}
		audits = append(audits, ClassAudit{
			Class:        corpus.ClassID(class),
			Observations: obs,
			Insufficient: obs < minObservations,
		})
	}
	return audits
}
