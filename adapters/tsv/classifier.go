package tsv

import (
	"glyphchain/domain/corpus"
)

// DerivedClassifier is the token taxonomy recovered from a loaded corpus:
// every surface form maps to the class and MIDDLE it carried in the
// transcription. Tokens never seen in the corpus are unclassified, which is
// exactly the condition that drops inventory pairs during forbidden-set
// construction.
type DerivedClassifier struct {
	classes map[string]corpus.ClassID
	middles map[string]string
}

// DeriveClassifier indexes a corpus's token records.
func DeriveClassifier(c *corpus.Corpus) *DerivedClassifier {
	dc := &DerivedClassifier{
		classes: make(map[string]corpus.ClassID),
		middles: make(map[string]string),
	}
	for _, line := range c.Lines {
		for _, tok := range line.Tokens {
			dc.classes[tok.Text] = tok.Class
			dc.middles[tok.Text] = tok.Middle
		}
	}
	return dc
}

// ClassOf returns the class id for a token, or false when unclassified.
func (dc *DerivedClassifier) ClassOf(token string) (corpus.ClassID, bool) {
	class, ok := dc.classes[token]
	return class, ok
}

// MiddleOf returns the recorded morphological core, falling back to the
// token itself for unknown forms.
func (dc *DerivedClassifier) MiddleOf(token string) string {
	if middle, ok := dc.middles[token]; ok {
		return middle
	}
	return token
}
