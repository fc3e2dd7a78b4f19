package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"glyphchain/internal/errors"
	"glyphchain/internal/harness"
	"glyphchain/internal/metrics"
)

const comparisonSheet = "Comparison"

// WriteWorkbook writes the ranked comparison table as an xlsx workbook with
// one row per candidate model and mean/std/pass-rate columns per metric.
func WriteWorkbook(path string, cmp *harness.Comparison) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.ReportError("failed to create report directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(comparisonSheet)
	if err != nil {
		return errors.ReportError("failed to create comparison sheet", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []interface{}{"Model", "Variant", "Zeroed Cells"}
	for _, metric := range metrics.All() {
		headers = append(headers,
			fmt.Sprintf("%s real", metric),
			fmt.Sprintf("%s mean", metric),
			fmt.Sprintf("%s std", metric),
			fmt.Sprintf("%s pass", metric),
		)
	}
	headers = append(headers, "All Passed", "Score")
	if err := f.SetSheetRow(comparisonSheet, "A1", &headers); err != nil {
		return errors.ReportError("failed to write header row", err)
	}

	for i, m := range cmp.Models {
		row := []interface{}{m.Model, string(m.Variant), m.ZeroedCells}
		for _, metric := range metrics.All() {
			s := m.Summaries[metric]
			row = append(row, s.RealValue, s.Mean, s.StdDev, s.PassRate)
		}
		row = append(row, m.AllPassed, m.Score)
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(comparisonSheet, cell, &row); err != nil {
			return errors.ReportError("failed to write model row", err)
		}
	}

	verdictCell := fmt.Sprintf("A%d", len(cmp.Models)+3)
	if err := f.SetCellValue(comparisonSheet, verdictCell, cmp.Verdict); err != nil {
		return errors.ReportError("failed to write verdict", err)
	}
	runCell := fmt.Sprintf("A%d", len(cmp.Models)+4)
	if err := f.SetCellValue(comparisonSheet, runCell, "run "+cmp.RunID.String()); err != nil {
		return errors.ReportError("failed to write run id", err)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.ReportError("failed to save workbook", err)
	}
	return nil
}
