package pipeline

import (
	"os"
	"path/filepath"

	"github.com/imgtools/imgslim/internal/codec"
)

// OptimizeFile processes one file: sniff the real format, re-encode the
// optimizable formats with their format-specific settings, byte-copy
// everything else. Failures are folded into the result's status; they are
// never fatal to the batch.
func OptimizeFile(src, dst string, quality int) FileResult {
	res := FileResult{Src: src, Dest: dst, Status: StatusSkipped}

	// Capture the source size up front so error results still report it.
	if fi, err := os.Stat(src); err == nil {
		res.OrigSize = fi.Size()
	}

	buf, err := os.ReadFile(src)
	if err != nil {
		res.Status = errorStatus(err)
		return res
	}

	img, err := codec.Sniff(buf)
	if err != nil {
		res.Status = errorStatus(err)
		return res
	}

	if img.Format == codec.Other {
		// Unknown-but-decodable formats are copied as-is.
		if err := writeFile(dst, buf); err != nil {
			res.Status = errorStatus(err)
			return res
		}
		res.Status = StatusCopied
	} else {
		out, err := codec.Encode(buf, img.Format, codec.Options{
			Quality: quality,
			Alpha:   img.Alpha,
		})
		if err != nil {
			res.Status = errorStatus(err)
			return res
		}
		if err := writeFile(dst, out); err != nil {
			res.Status = errorStatus(err)
			return res
		}
		res.Status = StatusOptimized
	}

	if fi, err := os.Stat(dst); err == nil {
		res.NewSize = fi.Size()
	}
	return res
}

// writeFile writes data to path, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
