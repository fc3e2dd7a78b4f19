package ports

import (
	"glyphchain/domain/corpus"
)

// Classifier is the external token taxonomy: token to class id lookup plus
// the morphological segmentation that yields the MIDDLE core. Both are
// consumed, never built, by this module.
type Classifier interface {
	// ClassOf returns the class id for a token, or false when the token is
	// unclassified.
	ClassOf(token string) (corpus.ClassID, bool)

	// MiddleOf returns the morphological core of a token after prefix and
	// suffix stripping. Tokens with no recorded decomposition return the
	// token itself.
	MiddleOf(token string) string
}
