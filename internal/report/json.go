// Package report serializes a finished comparison into flat result files:
// a JSON result table, an xlsx comparison workbook, and a plain-text verdict.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	"glyphchain/internal/errors"
	"glyphchain/internal/harness"
)

// WriteJSON writes the full comparison, including per-instantiation metric
// values, as an indented JSON document.
func WriteJSON(path string, cmp *harness.Comparison) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.ReportError("failed to create report directory", err)
	}
	data, err := json.MarshalIndent(cmp, "", "  ")
	if err != nil {
		return errors.ReportError("failed to encode comparison", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.ReportError("failed to write JSON report", err)
	}
	return nil
}
