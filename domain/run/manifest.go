// Package run records what went into a comparison run so that any result
// file can be replayed: input fingerprints, the seed schedule, and the
// generation parameters that shaped every synthetic corpus.
package run

import (
	"fmt"
	"strings"

	"glyphchain/domain/core"
	"glyphchain/domain/corpus"
	"glyphchain/domain/model"
)

// Manifest is the truth source for replaying a run. It is written before the
// comparison starts; two runs with equal fingerprints produce identical
// result tables.
type Manifest struct {
	RunID          core.RunID     `json:"run_id"`
	CorpusPath     string         `json:"corpus_path"`
	CorpusHash     core.Hash      `json:"corpus_hash"`
	InventoryPath  string         `json:"inventory_path"`
	InventoryHash  core.Hash      `json:"inventory_hash"`
	BaseSeed       int64          `json:"base_seed"`
	Instantiations int            `json:"instantiations"`
	MixingWeight   float64        `json:"mixing_weight"`
	Models         []string       `json:"models"`
	Fingerprint    core.Hash      `json:"fingerprint"`
	CreatedAt      core.Timestamp `json:"created_at"`
}

// NewManifest assembles a manifest and seals it with a determinism
// fingerprint over everything that can change the outcome.
func NewManifest(runID core.RunID, corpusPath string, corpusHash core.Hash,
	inventoryPath string, inventoryHash core.Hash,
	baseSeed int64, instantiations int, mixingWeight float64, models []string) *Manifest {

	m := &Manifest{
		RunID:          runID,
		CorpusPath:     corpusPath,
		CorpusHash:     corpusHash,
		InventoryPath:  inventoryPath,
		InventoryHash:  inventoryHash,
		BaseSeed:       baseSeed,
		Instantiations: instantiations,
		MixingWeight:   mixingWeight,
		Models:         models,
		CreatedAt:      core.Now(),
	}
	m.Fingerprint = m.computeFingerprint()
	return m
}

// computeFingerprint hashes the determinism parameters. The run id and
// creation time are deliberately excluded so that replays match.
func (m *Manifest) computeFingerprint() core.Hash {
	data := fmt.Sprintf("corpus:%s|inventory:%s|seed:%d|n:%d|mix:%g|models:%s",
		m.CorpusHash, m.InventoryHash, m.BaseSeed, m.Instantiations, m.MixingWeight,
		strings.Join(m.Models, ","))
	return core.NewHash([]byte(data))
}

// HashCorpus fingerprints the loaded corpus content, token by token, so the
// manifest detects any change to the transcription input.
func HashCorpus(c *corpus.Corpus) core.Hash {
	var b strings.Builder
	for _, line := range c.Lines {
		b.WriteString(line.Key)
		for _, tok := range line.Tokens {
			fmt.Fprintf(&b, "|%s:%d:%s", tok.Text, tok.Class, tok.Middle)
		}
		b.WriteByte('\n')
	}
	return core.NewHash([]byte(b.String()))
}

// HashInventory fingerprints the mined forbidden-pair list in file order.
func HashInventory(pairs []model.TokenPair) core.Hash {
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(p.Source)
		b.WriteByte('\t')
		b.WriteString(p.Target)
		b.WriteByte('\n')
	}
	return core.NewHash([]byte(b.String()))
}
