package metrics_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glyphchain/domain/corpus"
	"glyphchain/domain/model"
	"glyphchain/internal/metrics"
	"glyphchain/internal/sampler"
	"glyphchain/internal/testkit"
)

func TestViolationCountAtMiddleLevel(t *testing.T) {
	inv := metrics.NewMiddleInventory(
		[]model.TokenPair{{Source: "qokedy", Target: "chedy"}},
		func(tok string) string {
			// Toy morphology: strip the "qo"/"ch" prefix and "y" suffix.
			middles := map[string]string{"qokedy": "ked", "chedy": "ed"}
			return middles[tok]
		},
	)

	c := &corpus.Corpus{Lines: []corpus.Line{
		{Key: "f1.1", Tokens: []corpus.Token{
			{Text: "qokedy", Class: 1, Middle: "ked"},
			{Text: "chedy", Class: 2, Middle: "ed"},
			{Text: "qokedy", Class: 1, Middle: "ked"},
		}},
		// Line boundary: the trailing "ked" and the next line's "ed" never pair.
		{Key: "f1.2", Tokens: []corpus.Token{
			{Text: "chedy", Class: 2, Middle: "ed"},
			{Text: "qokedy", Class: 1, Middle: "ked"},
		}},
	}}

	assert.Equal(t, 1.0, metrics.ViolationCount(c, inv))
}

func TestSuppressedModelGeneratesZeroViolations(t *testing.T) {
	// Ground-truth check: with a one-to-one token-per-class toy corpus, a
	// suppressed model can never emit the literal forbidden middle pair,
	// while the unsuppressed baseline emits it freely.
	real := testkit.UniformCorpus(3, 200, 10, 29)
	stats := model.BuildEmpirical(real)
	pairs := testkit.ToyInventory(model.ClassPair{From: 1, To: 2})
	set := model.MapForbiddenPairs(pairs, testkit.ToyClassOf)
	require.Equal(t, 1, set.Len())

	inv := metrics.NewMiddleInventory(pairs, testkit.ToyMiddleOf)

	suppressed := model.NewSuppressed("asym", model.VariantAsymmetric, stats, set)
	baseline := model.NewBaseline(stats)

	synthSuppressed := sampler.New(suppressed, stats, rand.New(rand.NewSource(3))).Corpus()
	synthBaseline := sampler.New(baseline, stats, rand.New(rand.NewSource(3))).Corpus()

	assert.Zero(t, metrics.ViolationCount(synthSuppressed, inv))
	assert.Greater(t, metrics.ViolationCount(synthBaseline, inv), 10.0,
		"an unsuppressed model over uniform transitions must violate freely")
}
