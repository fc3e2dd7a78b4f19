package metrics

import (
	"glyphchain/domain/corpus"
	"glyphchain/domain/model"
)

// MiddleInventory holds the token-level forbidden inventory lifted to the
// morphological MIDDLE level. B3 checks ground truth at this level,
// independent of class identity and of whichever suppression variant
// generated the corpus.
type MiddleInventory struct {
	pairs map[[2]string]struct{}
}

// NewMiddleInventory maps each inventory token through the morphology
// collaborator and records the resulting (MIDDLE, MIDDLE) pairs.
func NewMiddleInventory(inventory []model.TokenPair, middleOf func(string) string) *MiddleInventory {
	inv := &MiddleInventory{pairs: make(map[[2]string]struct{}, len(inventory))}
	for _, tp := range inventory {
		inv.pairs[[2]string{middleOf(tp.Source), middleOf(tp.Target)}] = struct{}{}
	}
	return inv
}

// Len returns the number of distinct forbidden middle pairs.
func (inv *MiddleInventory) Len() int { return len(inv.pairs) }

// Contains reports whether the ordered (source, target) middle pair is
// forbidden.
func (inv *MiddleInventory) Contains(source, target string) bool {
	_, ok := inv.pairs[[2]string{source, target}]
	return ok
}

// ViolationCount computes B3: the number of adjacent token pairs whose
// (MIDDLE, MIDDLE) pair appears in the forbidden inventory. Pairs never
// cross line boundaries.
func ViolationCount(c *corpus.Corpus, inv *MiddleInventory) float64 {
	count := 0.0
	for _, line := range c.Lines {
		for i := 0; i+1 < len(line.Tokens); i++ {
			if inv.Contains(line.Tokens[i].Middle, line.Tokens[i+1].Middle) {
				count++
			}
		}
	}
	return count
}
