package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	"glyphchain/domain/run"
	"glyphchain/internal/errors"
)

// WriteManifest writes the run manifest next to the result files so any
// comparison table can be traced back to its exact inputs and seeds.
func WriteManifest(path string, m *run.Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.ReportError("failed to create report directory", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.ReportError("failed to encode run manifest", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.ReportError("failed to write run manifest", err)
	}
	return nil
}
