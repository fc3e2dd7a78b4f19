package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glyphchain/domain/corpus"
	"glyphchain/domain/model"
	"glyphchain/internal/testkit"
)

func TestBuildEmpiricalCountsWithinLinesOnly(t *testing.T) {
	c := &corpus.Corpus{Lines: []corpus.Line{
		testkit.LineOf("f1.1", 1, 2, 3),
		testkit.LineOf("f1.2", 3, 1),
	}}

	stats := model.BuildEmpirical(c)

	require.Equal(t, 4, stats.K)
	assert.Equal(t, 1.0, stats.Transitions.At(1, 2))
	assert.Equal(t, 1.0, stats.Transitions.At(2, 3))
	assert.Equal(t, 1.0, stats.Transitions.At(3, 1))
	// Line boundary between "...3" and "3..." contributes nothing.
	assert.Equal(t, 0.0, stats.Transitions.At(3, 3))

	assert.Equal(t, 1.0, stats.Openers[1])
	assert.Equal(t, 1.0, stats.Openers[3])
	assert.Equal(t, []int{3, 2}, stats.LineLengths)
}

func TestBuildEmpiricalTokenTables(t *testing.T) {
	c := &corpus.Corpus{Lines: []corpus.Line{
		{Key: "f1.1", Tokens: []corpus.Token{
			{Text: "daiin", Class: 2, Middle: "aii"},
			{Text: "daiin", Class: 2, Middle: "aii"},
			{Text: "dain", Class: 2, Middle: "ai"},
			{Text: "chol", Class: 5, Middle: "cho"},
		}},
	}}

	stats := model.BuildEmpirical(c)

	table := stats.TokenFreq[2]
	require.Len(t, table, 2)
	// Frequency-descending order, middles preserved.
	assert.Equal(t, model.TokenCount{Text: "daiin", Middle: "aii", Count: 2}, table[0])
	assert.Equal(t, model.TokenCount{Text: "dain", Middle: "ai", Count: 1}, table[1])
	require.Len(t, stats.TokenFreq[5], 1)
}

func TestAuditFlagsSparseClasses(t *testing.T) {
	c := &corpus.Corpus{Lines: []corpus.Line{
		testkit.LineOf("f1.1", 1, 1, 1, 1, 1, 2),
	}}

	audits := model.BuildEmpirical(c).Audit(3)

	byClass := map[corpus.ClassID]model.ClassAudit{}
	for _, a := range audits {
		byClass[a.Class] = a
	}
	require.Contains(t, byClass, corpus.ClassID(1))
	require.Contains(t, byClass, corpus.ClassID(2))
	assert.False(t, byClass[1].Insufficient)
	assert.True(t, byClass[2].Insufficient)
}

func TestBuildEmpiricalSkipsEmptyLines(t *testing.T) {
	c := &corpus.Corpus{Lines: []corpus.Line{
		{Key: "f1.1"},
		testkit.LineOf("f1.2", 2, 2),
	}}
	stats := model.BuildEmpirical(c)
	assert.Equal(t, []int{2}, stats.LineLengths)
}
