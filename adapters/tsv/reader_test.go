package tsv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glyphchain/domain/corpus"
	"glyphchain/internal/errors"
)

func writeTSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCorpusGroupsByLineKey(t *testing.T) {
	path := writeTSV(t, ""+
		"key\ttoken\tclass\tmiddle\n"+
		"f1.1\tqokedy\t7\tked\n"+
		"f1.1\tchedy\t12\ted\n"+
		"f1.2\tdaiin\t3\tai\n")

	r := NewReader(path)
	c, err := r.ReadCorpus(context.Background())
	require.NoError(t, err)

	require.Len(t, c.Lines, 2)
	assert.Equal(t, "f1.1", c.Lines[0].Key)
	assert.Equal(t, "f1.2", c.Lines[1].Key)
	require.Len(t, c.Lines[0].Tokens, 2)
	assert.Equal(t, corpus.Token{Text: "qokedy", Class: 7, Middle: "ked"}, c.Lines[0].Tokens[0])
	assert.Equal(t, corpus.Token{Text: "chedy", Class: 12, Middle: "ed"}, c.Lines[0].Tokens[1])
	assert.Zero(t, r.SkippedRows())
}

func TestReadCorpusSkipsMalformedRows(t *testing.T) {
	path := writeTSV(t, ""+
		"f1.1\tqokedy\t7\tked\n"+
		"f1.1\tchedy\tnot-a-class\ted\n"+ // unparseable class id
		"f1.1\tshort\n"+ // too few columns
		"f1.1\tdaiin\t0\tai\n"+ // class below the valid range
		"f1.2\tdaiin\t3\tai\n")

	r := NewReader(path)
	c, err := r.ReadCorpus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, r.SkippedRows())
	require.Len(t, c.Lines, 2)
	assert.Len(t, c.Lines[0].Tokens, 1)
}

func TestReadCorpusRejectsEmptyFile(t *testing.T) {
	path := writeTSV(t, "key\ttoken\tclass\tmiddle\n")

	_, err := NewReader(path).ReadCorpus(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeCorpusInvalid, errors.GetCode(err))
}

func TestReadCorpusMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "absent.tsv")).ReadCorpus(context.Background())
	assert.Error(t, err)
}

func TestReadCorpusHonorsContextCancellation(t *testing.T) {
	path := writeTSV(t, "f1.1\tqokedy\t7\tked\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewReader(path).ReadCorpus(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeriveClassifier(t *testing.T) {
	c := &corpus.Corpus{Lines: []corpus.Line{
		{Key: "f1.1", Tokens: []corpus.Token{
			{Text: "qokedy", Class: 7, Middle: "ked"},
			{Text: "chedy", Class: 12, Middle: "ed"},
		}},
	}}

	dc := DeriveClassifier(c)

	class, ok := dc.ClassOf("qokedy")
	require.True(t, ok)
	assert.Equal(t, corpus.ClassID(7), class)
	assert.Equal(t, "ed", dc.MiddleOf("chedy"))

	_, ok = dc.ClassOf("unseen")
	assert.False(t, ok)
	assert.Equal(t, "unseen", dc.MiddleOf("unseen"))
}
