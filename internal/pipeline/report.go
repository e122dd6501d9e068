package pipeline

import (
	"fmt"
	"io"

	"github.com/imgtools/imgslim/internal/display"
)

// WriteReport prints the per-file lines and the totals block in the legacy
// report format: one line per file in traversal order, a separator, then
// aggregate kilobytes, bytes saved, and the savings percentage.
func WriteReport(w io.Writer, sum *RunSummary) {
	for _, r := range sum.Results {
		switch {
		case r.IsError():
			fmt.Fprintf(w, "ERR: %s -> %s\n", r.Src, r.Status)
		case r.OrigSize > 0 && r.NewSize > 0:
			fmt.Fprintf(w, "%s -> %s: %s -> %s\n",
				r.Src, r.Dest, display.FormatKB(r.OrigSize), display.FormatKB(r.NewSize))
		default:
			fmt.Fprintf(w, "%s -> %s: %s\n", r.Src, r.Dest, r.Status)
		}
	}
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Total: %s -> %s, saved %s (%.1f%%)\n",
		display.FormatKB(sum.TotalOrigBytes),
		display.FormatKB(sum.TotalNewBytes),
		display.FormatKB(sum.Saved()),
		display.SavedPercent(sum.TotalOrigBytes, sum.TotalNewBytes))
}
