// Package tsv reads the classified, line-segmented transcription from a
// tab-separated file. The transcription pipeline that produces the file is an
// external collaborator; this adapter is only the boundary that turns its
// output into the in-memory corpus.
package tsv

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"glyphchain/domain/corpus"
	"glyphchain/internal"
	"glyphchain/internal/errors"
)

// Columns: folio/line key, token, class id, MIDDLE. A header row named
// "key" in the first column is skipped.
const (
	colKey = iota
	colToken
	colClass
	colMiddle
	columnCount
)

// Reader loads a transcription TSV into a corpus, grouping consecutive rows
// that share a line key.
type Reader struct {
	path    string
	logger  *internal.Logger
	skipped int
}

// NewReader creates a reader for the given TSV path.
func NewReader(path string) *Reader {
	return &Reader{path: path, logger: internal.NewLogger("TSVReader")}
}

// SkippedRows reports how many malformed rows the last read discarded.
func (r *Reader) SkippedRows() int { return r.skipped }

// ReadCorpus parses the file. Rows with a malformed class id or too few
// columns are skipped with a counted warning rather than aborting the load.
func (r *Reader) ReadCorpus(ctx context.Context) (*corpus.Corpus, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open corpus file %s", r.path)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1

	out := &corpus.Corpus{}
	r.skipped = 0
	var cur *corpus.Line
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse corpus file %s", r.path)
		}
		if len(record) < columnCount {
			r.skipped++
			continue
		}
		if record[colKey] == "key" {
			// Header row.
			continue
		}
		class, err := strconv.Atoi(record[colClass])
		if err != nil || class < 1 {
			r.skipped++
			continue
		}
		tok := corpus.Token{
			Text:   record[colToken],
			Class:  corpus.ClassID(class),
			Middle: record[colMiddle],
		}
		if cur == nil || cur.Key != record[colKey] {
			out.Lines = append(out.Lines, corpus.Line{Key: record[colKey]})
			cur = &out.Lines[len(out.Lines)-1]
		}
		cur.Tokens = append(cur.Tokens, tok)
	}

	if r.skipped > 0 {
		r.logger.Warn("skipped %d malformed rows in %s", r.skipped, r.path)
	}
	if len(out.Lines) == 0 {
		return nil, errors.CorpusInvalid("corpus file contains no usable lines")
	}
	return out, nil
}
