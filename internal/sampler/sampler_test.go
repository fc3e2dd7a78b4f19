package sampler_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glyphchain/domain/corpus"
	"glyphchain/domain/model"
	"glyphchain/internal/sampler"
	"glyphchain/internal/testkit"
)

func buildModel(t *testing.T, c *corpus.Corpus) (*model.CandidateModel, *model.EmpiricalStats) {
	t.Helper()
	stats := model.BuildEmpirical(c)
	return model.NewBaseline(stats), stats
}

func TestSamplerReproducibility(t *testing.T) {
	real := testkit.UniformCorpus(3, 40, 8, 11)
	cand, stats := buildModel(t, real)

	a := sampler.New(cand, stats, rand.New(rand.NewSource(99))).Corpus()
	b := sampler.New(cand, stats, rand.New(rand.NewSource(99))).Corpus()

	require.Equal(t, len(a.Lines), len(b.Lines))
	for i := range a.Lines {
		assert.Equal(t, a.Lines[i], b.Lines[i], "line %d diverged between identically seeded runs", i)
	}
}

func TestSamplerDistinctSeedsDiverge(t *testing.T) {
	real := testkit.UniformCorpus(3, 40, 8, 11)
	cand, stats := buildModel(t, real)

	a := sampler.New(cand, stats, rand.New(rand.NewSource(1))).Corpus()
	b := sampler.New(cand, stats, rand.New(rand.NewSource(2))).Corpus()

	assert.NotEqual(t, a, b)
}

func TestSamplerMatchesLineProfile(t *testing.T) {
	real := &corpus.Corpus{Lines: []corpus.Line{
		testkit.LineOf("f1.1", 1, 2, 1, 2, 1),
		testkit.LineOf("f1.2", 2, 1, 2, 1, 2),
		testkit.LineOf("f1.3", 1, 2, 1, 2, 1),
	}}
	cand, stats := buildModel(t, real)

	synth := sampler.New(cand, stats, rand.New(rand.NewSource(5))).Corpus()

	// Same line count; every length drawn from the empirical profile.
	require.Equal(t, len(real.Lines), len(synth.Lines))
	for _, line := range synth.Lines {
		assert.Len(t, line.Tokens, 5)
	}
}

func TestSamplerEmitsOnlyObservedTokens(t *testing.T) {
	real := testkit.UniformCorpus(4, 30, 6, 3)
	cand, stats := buildModel(t, real)

	observed := map[string]corpus.ClassID{}
	for _, line := range real.Lines {
		for _, tok := range line.Tokens {
			observed[tok.Text] = tok.Class
		}
	}

	synth := sampler.New(cand, stats, rand.New(rand.NewSource(7))).Corpus()
	for _, line := range synth.Lines {
		for _, tok := range line.Tokens {
			class, ok := observed[tok.Text]
			require.True(t, ok, "token %q never occurs in the real corpus", tok.Text)
			assert.Equal(t, class, tok.Class)
		}
	}
}

func TestSamplerDegenerateRowFallsBackToOpeners(t *testing.T) {
	// Class 3 only ever closes a line, so its transition row is all-zero.
	real := &corpus.Corpus{Lines: []corpus.Line{
		testkit.LineOf("f1.1", 1, 2, 3),
		testkit.LineOf("f1.2", 2, 1, 3),
		testkit.LineOf("f1.3", 1, 1, 3),
	}}
	cand, stats := buildModel(t, real)
	require.True(t, cand.First.IsDegenerate(3))

	// Many draws so synthetic lines do hit class 3 mid-line; the documented
	// fallback must complete every line without error.
	synth := sampler.New(cand, stats, rand.New(rand.NewSource(17))).Corpus()
	require.Equal(t, len(real.Lines), len(synth.Lines))
	for _, line := range synth.Lines {
		assert.Len(t, line.Tokens, 3)
	}
}

func TestSamplerSecondOrderCompletes(t *testing.T) {
	real := testkit.UniformCorpus(3, 50, 10, 23)
	stats := model.BuildEmpirical(real)
	set := model.NewForbiddenPairSet([]model.ClassPair{{From: 1, To: 2}})
	cand := model.NewSecondOrder(real, stats, set)

	synth := sampler.New(cand, stats, rand.New(rand.NewSource(31))).Corpus()

	require.Equal(t, len(real.Lines), len(synth.Lines))
	// Suppression holds in generated class sequences.
	for _, line := range synth.Lines {
		for i := 0; i+1 < len(line.Tokens); i++ {
			if line.Tokens[i].Class == 1 {
				assert.NotEqual(t, corpus.ClassID(2), line.Tokens[i+1].Class)
			}
		}
	}
}
