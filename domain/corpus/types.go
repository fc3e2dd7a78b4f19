package corpus

// ClassID is the integer category an external classifier assigns to a token.
// Valid ids start at 1; 0 is reserved for "unclassified" and never appears in
// a loaded corpus.
type ClassID int

// Token is one transcription record: the surface form, its classifier-assigned
// class, and the morphological core left after prefix/suffix stripping.
type Token struct {
	Text   string
	Class  ClassID
	Middle string
}

// Line is an ordered token sequence scoped to one manuscript line. Lines are
// the unit of sequence locality: transitions are counted and generated within
// a line, never across line boundaries.
type Line struct {
	// Key is the folio/line identifier used for grouping, e.g. "f42r.3".
	Key    string
	Tokens []Token
}

// Corpus is an ordered collection of lines, either loaded from a
// transcription or synthesized by the sampler.
type Corpus struct {
	Lines []Line
}

// TokenCount returns the total number of tokens across all lines.
func (c *Corpus) TokenCount() int {
	n := 0
	for _, line := range c.Lines {
		n += len(line.Tokens)
	}
	return n
}

// MaxClass returns the highest class id observed anywhere in the corpus,
// or 0 for an empty corpus.
func (c *Corpus) MaxClass() ClassID {
	max := ClassID(0)
	for _, line := range c.Lines {
		for _, tok := range line.Tokens {
			if tok.Class > max {
				max = tok.Class
			}
		}
	}
	return max
}
