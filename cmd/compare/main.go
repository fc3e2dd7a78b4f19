package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"glyphchain/adapters/inventory"
	"glyphchain/adapters/tsv"
	"glyphchain/domain/corpus"
	"glyphchain/domain/model"
	"glyphchain/domain/run"
	"glyphchain/internal"
	"glyphchain/internal/config"
	"glyphchain/internal/harness"
	"glyphchain/internal/metrics"
	"glyphchain/internal/report"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	logger := internal.NewLogger("Compare")
	cfg, err := config.Load()
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	corpusPath := flag.String("corpus", cfg.Paths.CorpusTSV, "classified transcription TSV (key, token, class, middle)")
	inventoryPath := flag.String("inventory", cfg.Paths.InventoryTSV, "forbidden token-pair TSV (source, target)")
	outputDir := flag.String("out", cfg.Paths.OutputDir, "directory for result files")
	baseSeed := flag.Int64("seed", cfg.Experiment.BaseSeed, "base seed; instantiation i uses seed+i")
	instantiations := flag.Int("n", cfg.Experiment.Instantiations, "instantiations per candidate model")
	flag.Parse()

	cfg.Paths.CorpusTSV = *corpusPath
	cfg.Paths.InventoryTSV = *inventoryPath
	cfg.Paths.OutputDir = *outputDir
	cfg.Experiment.BaseSeed = *baseSeed
	cfg.Experiment.Instantiations = *instantiations

	if cfg.Paths.CorpusTSV == "" || cfg.Paths.InventoryTSV == "" {
		logger.Error("both -corpus and -inventory are required")
		flag.Usage()
		os.Exit(1)
	}

	if err := execute(context.Background(), cfg, logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func execute(ctx context.Context, cfg *config.Config, logger *internal.Logger) error {
	corpusReader := tsv.NewReader(cfg.Paths.CorpusTSV)
	real, err := corpusReader.ReadCorpus(ctx)
	if err != nil {
		return err
	}
	logger.Info("loaded corpus: %d lines, %d tokens, %d classes",
		len(real.Lines), real.TokenCount(), real.MaxClass())

	pairs, err := inventory.NewReader(cfg.Paths.InventoryTSV).ReadInventory(ctx)
	if err != nil {
		return err
	}
	classifier := tsv.DeriveClassifier(real)

	empirical := model.BuildEmpirical(real)
	for _, audit := range empirical.Audit(cfg.Experiment.MinClassObservations) {
		if audit.Insufficient {
			logger.Warn("class %d: insufficient data (%d observations, minimum %d)",
				audit.Class, audit.Observations, cfg.Experiment.MinClassObservations)
		}
	}

	asMined := model.MapForbiddenPairs(pairs, classifier.ClassOf)
	symmetric := asMined.Symmetrized()
	logger.Info("forbidden pairs: %d as mined (%d inventory entries dropped), %d after symmetrization",
		asMined.Len(), asMined.DroppedCount(), symmetric.Len())

	candidates := []*model.CandidateModel{
		model.NewBaseline(empirical),
		model.NewSuppressed("asymmetric-suppression", model.VariantAsymmetric, empirical, asMined),
		model.NewSuppressed("symmetric-suppression", model.VariantSymmetric, empirical, symmetric),
		model.NewBlendedReverse(empirical, asMined, cfg.Experiment.MixingWeight),
		model.NewSecondOrder(real, empirical, asMined),
	}

	middleInv := metrics.NewMiddleInventory(pairs, classifier.MiddleOf)
	h := harness.New(cfg, empirical, corpus.DefaultPartition(), middleInv)
	cmp, err := h.Compare(ctx, candidates, real)
	if err != nil {
		return err
	}

	names := make([]string, len(candidates))
	for i, cand := range candidates {
		names[i] = cand.Name
	}
	manifest := run.NewManifest(cmp.RunID,
		cfg.Paths.CorpusTSV, run.HashCorpus(real),
		cfg.Paths.InventoryTSV, run.HashInventory(pairs),
		cfg.Experiment.BaseSeed, cfg.Experiment.Instantiations,
		cfg.Experiment.MixingWeight, names)

	manifestPath := filepath.Join(cfg.Paths.OutputDir, "manifest.json")
	jsonPath := filepath.Join(cfg.Paths.OutputDir, "comparison.json")
	xlsxPath := filepath.Join(cfg.Paths.OutputDir, "comparison.xlsx")
	textPath := filepath.Join(cfg.Paths.OutputDir, "verdict.txt")
	if err := report.WriteManifest(manifestPath, manifest); err != nil {
		return err
	}
	if err := report.WriteJSON(jsonPath, cmp); err != nil {
		return err
	}
	if err := report.WriteWorkbook(xlsxPath, cmp); err != nil {
		return err
	}
	if err := report.WriteText(textPath, cmp); err != nil {
		return err
	}

	fmt.Print(report.Render(cmp))
	logger.Info("reports written to %s", cfg.Paths.OutputDir)
	return nil
}
