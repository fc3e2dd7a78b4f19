package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"glyphchain/internal/errors"
	"glyphchain/internal/harness"
	"glyphchain/internal/metrics"
)

// Render formats the comparison as a human-readable table plus the verdict.
func Render(cmp *harness.Comparison) string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s (%d instantiations per model, base seed %d)\n",
		cmp.RunID, cmp.Instantiations, cmp.BaseSeed)
	fmt.Fprintf(&b, "real corpus: B1=%.4f B3=%.0f B5=%.4f\n\n",
		cmp.Real[metrics.B1SpectralGap], cmp.Real[metrics.B3Violations], cmp.Real[metrics.B5Divergence])

	fmt.Fprintf(&b, "%-28s %-22s %8s %8s %8s %8s\n",
		"model", "variant", "B1 pass", "B3 pass", "B5 pass", "score")
	for _, m := range cmp.Models {
		fmt.Fprintf(&b, "%-28s %-22s %7.0f%% %7.0f%% %7.0f%% %8.2f\n",
			m.Model, m.Variant,
			100*m.Summaries[metrics.B1SpectralGap].PassRate,
			100*m.Summaries[metrics.B3Violations].PassRate,
			100*m.Summaries[metrics.B5Divergence].PassRate,
			m.Score)
	}
	fmt.Fprintf(&b, "\nverdict: %s\n", cmp.Verdict)
	return b.String()
}

// WriteText writes the rendered comparison to a flat file.
func WriteText(path string, cmp *harness.Comparison) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.ReportError("failed to create report directory", err)
	}
	if err := os.WriteFile(path, []byte(Render(cmp)), 0o644); err != nil {
		return errors.ReportError("failed to write text report", err)
	}
	return nil
}
