// Package testkit provides deterministic toy corpora and fixtures shared by
// the package tests.
package testkit

import (
	"fmt"
	"math/rand"

	"glyphchain/domain/corpus"
	"glyphchain/domain/model"
)

// ToyToken returns the canonical surface form for a toy class, e.g. class 2
// becomes "t2". The morphological core of a toy token is the token itself.
func ToyToken(class corpus.ClassID) corpus.Token {
	text := fmt.Sprintf("t%d", class)
	return corpus.Token{Text: text, Class: class, Middle: text}
}

// LineOf builds one line from a class sequence using canonical toy tokens.
func LineOf(key string, classes ...corpus.ClassID) corpus.Line {
	line := corpus.Line{Key: key}
	for _, c := range classes {
		line.Tokens = append(line.Tokens, ToyToken(c))
	}
	return line
}

// UniformCorpus draws a corpus over classes 1..classes with uniformly random
// transitions, openers, and a fixed line length. Deterministic for a seed.
func UniformCorpus(classes, lines, lineLen int, seed int64) *corpus.Corpus {
	rng := rand.New(rand.NewSource(seed))
	c := &corpus.Corpus{}
	for i := 0; i < lines; i++ {
		line := corpus.Line{Key: fmt.Sprintf("toy.%03d", i)}
		for j := 0; j < lineLen; j++ {
			line.Tokens = append(line.Tokens, ToyToken(corpus.ClassID(rng.Intn(classes)+1)))
		}
		c.Lines = append(c.Lines, line)
	}
	return c
}

// ToyPartition maps toy classes onto two roles so the macro-state chain has
// a small, fully controlled structure: odd classes are energy, even classes
// are flow-safe.
func ToyPartition(classes int) *corpus.Partition {
	table := map[corpus.ClassID]corpus.Role{}
	for c := 1; c <= classes; c++ {
		if c%2 == 1 {
			table[corpus.ClassID(c)] = corpus.RoleEnergy
		} else {
			table[corpus.ClassID(c)] = corpus.RoleFlowSafe
		}
	}
	return corpus.NewPartition(table)
}

// ToyClassOf is the classifier lookup for canonical toy tokens: "t3" maps to
// class 3; anything else is unclassified.
func ToyClassOf(token string) (corpus.ClassID, bool) {
	var class int
	if _, err := fmt.Sscanf(token, "t%d", &class); err != nil || class < 1 {
		return 0, false
	}
	return corpus.ClassID(class), true
}

// ToyMiddleOf is the identity morphology used by toy corpora.
func ToyMiddleOf(token string) string { return token }

// ToyInventory builds a token-level inventory forbidding the given class
// pairs, expressed through canonical toy tokens.
func ToyInventory(pairs ...model.ClassPair) []model.TokenPair {
	out := make([]model.TokenPair, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, model.TokenPair{
			Source: ToyToken(p.From).Text,
			Target: ToyToken(p.To).Text,
		})
	}
	return out
}
