// Package inventory reads the externally mined token-level forbidden-pair
// list from a two-column TSV (source token, target token).
package inventory

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"glyphchain/domain/model"
	"glyphchain/internal/errors"
)

// Reader loads the forbidden-pair inventory.
type Reader struct {
	path string
}

// NewReader creates a reader for the given TSV path.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// ReadInventory parses the file. Rows with fewer than two columns are
// malformed input and abort the load; an empty inventory is valid.
func (r *Reader) ReadInventory(ctx context.Context) ([]model.TokenPair, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open inventory file %s", r.path)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1

	var pairs []model.TokenPair
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse inventory file %s", r.path)
		}
		if len(record) < 2 {
			return nil, errors.InventoryInvalid("inventory rows need source and target columns")
		}
		if record[0] == "source" {
			// Header row.
			continue
		}
		pairs = append(pairs, model.TokenPair{Source: record[0], Target: record[1]})
	}
	return pairs, nil
}
