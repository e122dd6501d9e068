// Package pipeline orchestrates file discovery, per-file optimization, and
// batch summary reporting.
package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/imgtools/imgslim/internal/config"
	"github.com/imgtools/imgslim/internal/display"
	"github.com/imgtools/imgslim/internal/logging"
)

// Run is the top-level batch entry point. It discovers files, processes
// each sequentially, and returns the accumulated results and byte totals.
// Per-file failures are recorded and never abort the batch.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunSummary {
	var sum RunSummary

	files, err := Discover(cfg.SrcDir)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return sum
	}

	destRoot := cfg.DestRoot()
	logBatchHeader(cfg, log, len(files), destRoot)

	for i, path := range files {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		log.Info("[%d/%d] %s", i+1, len(files), filepath.Base(path))
		res := processFile(cfg, destRoot, path)
		logResult(log, res)
		sum.Add(res)
	}

	logSummary(log, &sum)
	return sum
}

// processFile resolves the destination path for one source file and runs
// the optimize operation, through a throwaway temp file in dry-run mode.
func processFile(cfg *config.Config, destRoot, path string) FileResult {
	dst := path // in-place
	if !cfg.InPlace {
		rel, err := filepath.Rel(cfg.SrcDir, path)
		if err != nil {
			return FileResult{Src: path, Dest: path, Status: errorStatus(err)}
		}
		dst = filepath.Join(destRoot, rel)
	}

	if !cfg.DryRun {
		return OptimizeFile(path, dst, cfg.Quality)
	}

	// Dry-run still pays the full encode cost: write to a temp file outside
	// the destination tree, record the size, then discard it.
	tmp, err := os.CreateTemp("", "imgslim-*"+filepath.Ext(path))
	if err != nil {
		return FileResult{Src: path, Dest: dst, Status: errorStatus(err)}
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	res := OptimizeFile(path, tmpPath, cfg.Quality)
	res.Dest = dst // report the path a real run would have written
	return res
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, total int, destRoot string) {
	log.Info("Found %d files", total)
	log.Info("Quality: %d (JPEG/WEBP; PNG and GIF stay lossless)", cfg.Quality)
	if cfg.InPlace {
		log.Warn("In-place mode: originals will be overwritten")
	} else {
		log.Info("Out: %s", destRoot)
	}
	if cfg.DryRun {
		log.Warn("DRY RUN — sizes are measured, nothing is kept")
	}
	log.Info("")
}

func logResult(log *logging.Logger, res FileResult) {
	switch {
	case res.IsError():
		log.Error("%s: %s", filepath.Base(res.Src), res.Status)
	case res.Status == StatusCopied:
		log.Info("  copied as-is (%s)", display.FormatBytes(res.NewSize))
	default:
		ratio := int64(100)
		if res.OrigSize > 0 {
			ratio = res.NewSize * 100 / res.OrigSize
		}
		log.Success("  %s -> %s (%d%% of original)",
			display.FormatBytes(res.OrigSize), display.FormatBytes(res.NewSize), ratio)
	}
}

func logSummary(log *logging.Logger, sum *RunSummary) {
	var optimized, copied, failed int
	for _, r := range sum.Results {
		switch {
		case r.IsError():
			failed++
		case r.Status == StatusCopied:
			copied++
		case r.Status == StatusOptimized:
			optimized++
		}
	}

	log.Info("==============================")
	log.Info("Done: %d optimized, %d copied, %d failed", optimized, copied, failed)

	saved := sum.Saved()
	if saved >= 0 {
		log.Success("Total space saved: %s (input %s -> output %s)",
			display.FormatBytes(saved),
			display.FormatBytes(sum.TotalOrigBytes),
			display.FormatBytes(sum.TotalNewBytes))
	} else {
		log.Warn("Total space saved: %s (overall output is larger)",
			display.FormatBytesWithSign(saved))
	}
}
