package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"glyphchain/domain/core"
	"glyphchain/domain/model"
	"glyphchain/internal/harness"
	"glyphchain/internal/metrics"
	"glyphchain/internal/report"
)

func sampleComparison() *harness.Comparison {
	summary := func(metric metrics.Metric, real, mean, rate float64) harness.MetricSummary {
		return harness.MetricSummary{Metric: metric, RealValue: real, Mean: mean, StdDev: 0.01, PassRate: rate}
	}
	return &harness.Comparison{
		RunID: core.NewRunID(),
		Real: map[metrics.Metric]float64{
			metrics.B1SpectralGap: 0.91,
			metrics.B3Violations:  0,
			metrics.B5Divergence:  0.04,
		},
		Models: []harness.ModelReport{
			{
				Model:       "symmetric-suppression",
				Variant:     model.VariantSymmetric,
				ZeroedCells: 12,
				Summaries: map[metrics.Metric]harness.MetricSummary{
					metrics.B1SpectralGap: summary(metrics.B1SpectralGap, 0.91, 0.90, 1.0),
					metrics.B3Violations:  summary(metrics.B3Violations, 0, 0, 1.0),
					metrics.B5Divergence:  summary(metrics.B5Divergence, 0.04, 0.05, 0.95),
				},
				Values: map[metrics.Metric][]float64{
					metrics.B1SpectralGap: {0.90, 0.91},
					metrics.B3Violations:  {0, 0},
					metrics.B5Divergence:  {0.05, 0.05},
				},
				AllPassed: true,
				Score:     0.98,
			},
			{
				Model:   "baseline",
				Variant: model.VariantBaseline,
				Summaries: map[metrics.Metric]harness.MetricSummary{
					metrics.B1SpectralGap: summary(metrics.B1SpectralGap, 0.91, 0.89, 0.9),
					metrics.B3Violations:  summary(metrics.B3Violations, 0, 34, 0.0),
					metrics.B5Divergence:  summary(metrics.B5Divergence, 0.04, 0.04, 1.0),
				},
				Values: map[metrics.Metric][]float64{
					metrics.B1SpectralGap: {0.89, 0.89},
					metrics.B3Violations:  {33, 35},
					metrics.B5Divergence:  {0.04, 0.04},
				},
				AllPassed: false,
				Score:     0.63,
			},
		},
		BestModel:      "symmetric-suppression",
		Verdict:        `model "symmetric-suppression" (symmetric-suppression) satisfies all pass-rate criteria (joint score 0.98); it reproduces the corpus structure within the configured bands`,
		Instantiations: 2,
		BaseSeed:       42,
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	cmp := sampleComparison()
	path := filepath.Join(t.TempDir(), "nested", "comparison.json")

	require.NoError(t, report.WriteJSON(path, cmp))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded harness.Comparison
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, cmp.BestModel, decoded.BestModel)
	assert.Equal(t, cmp.Verdict, decoded.Verdict)
	require.Len(t, decoded.Models, 2)
	assert.Equal(t, cmp.Models[0].Values, decoded.Models[0].Values)
}

func TestWriteText(t *testing.T) {
	cmp := sampleComparison()
	path := filepath.Join(t.TempDir(), "comparison.txt")

	require.NoError(t, report.WriteText(path, cmp))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "baseline")
	assert.Contains(t, text, "symmetric-suppression")
	assert.Contains(t, text, cmp.Verdict)
}

func TestRenderListsModelsInRankedOrder(t *testing.T) {
	cmp := sampleComparison()
	text := report.Render(cmp)
	assert.Regexp(t, `(?s)symmetric-suppression.*baseline`, text)
}

func TestWriteWorkbook(t *testing.T) {
	cmp := sampleComparison()
	path := filepath.Join(t.TempDir(), "comparison.xlsx")

	require.NoError(t, report.WriteWorkbook(path, cmp))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	model0, err := f.GetCellValue("Comparison", "A2")
	require.NoError(t, err)
	assert.Equal(t, "symmetric-suppression", model0)

	verdict, err := f.GetCellValue("Comparison", "A5")
	require.NoError(t, err)
	assert.Contains(t, verdict, "satisfies all pass-rate criteria")
}
