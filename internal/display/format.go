package display

import (
	"fmt"
)

// FormatKB renders a byte count as whole kilobytes with truncating division,
// the unit used by the per-file and totals report lines (e.g. "18KB").
func FormatKB(bytes int64) string {
	return fmt.Sprintf("%dKB", bytes/1024)
}

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatBytesWithSign prefixes with + or - for delta display (e.g. "- 1.2 MiB").
func FormatBytesWithSign(bytes int64) string {
	sign := ""
	if bytes > 0 {
		sign = "+ "
	} else if bytes < 0 {
		sign = "- "
		bytes = -bytes
	}
	return sign + FormatBytes(bytes)
}

// SavedPercent returns the percentage of origBytes saved by newBytes, with
// the zero-origin case pinned to 0 to avoid division by zero.
func SavedPercent(origBytes, newBytes int64) float64 {
	if origBytes == 0 {
		return 0
	}
	return float64(origBytes-newBytes) / float64(origBytes) * 100
}
