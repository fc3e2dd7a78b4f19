package ports

import (
	"context"

	"glyphchain/domain/corpus"
	"glyphchain/domain/model"
)

// CorpusReader loads the classified, line-segmented real corpus. Inputs are
// read once up front and immutable for the remainder of the run.
type CorpusReader interface {
	ReadCorpus(ctx context.Context) (*corpus.Corpus, error)
}

// InventoryReader loads the externally mined token-level forbidden-pair
// inventory.
type InventoryReader interface {
	ReadInventory(ctx context.Context) ([]model.TokenPair, error)
}
