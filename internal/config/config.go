// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. Defaults match the legacy optimize_images script for parity.
package config

import (
	"errors"
	"strings"
)

// DefaultDestDir is used when neither --dest nor --inplace is given,
// matching the legacy script's default output folder.
const DefaultDestDir = "images_optimized"

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Paths.
	SrcDir  string // Root directory to scan recursively (--src).
	DestDir string // Output root mirroring SrcDir (--dest). Exclusive with InPlace.

	// Behavior flags.
	InPlace bool // Overwrite source files directly (--inplace).
	Quality int  // JPEG/WEBP lossy quality. Default: 85. Passed to the encoder unvalidated.
	DryRun  bool // Measure savings without retaining output.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults matching the legacy
// optimize_images script. Used as the base before [ParseFlags] applies CLI
// overrides.
func DefaultConfig() Config {
	return Config{
		Quality:   85,
		ColorMode: ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks flag consistency. When not in CheckOnly mode, a source
// directory is required and --dest/--inplace must not be combined. Whether
// the source exists on disk is checked in main, where the exit path lives.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.CheckOnly {
		return nil
	}
	if c.SrcDir == "" {
		return errors.New("need a source directory (--src)")
	}
	if c.InPlace && c.DestDir != "" {
		return errors.New("cannot use --inplace and --dest together")
	}
	return nil
}

// DestRoot resolves the effective output root: the source itself for
// in-place mode, the explicit --dest when given, or the default folder.
func (c *Config) DestRoot() string {
	if c.InPlace {
		return c.SrcDir
	}
	if c.DestDir != "" {
		return c.DestDir
	}
	return DefaultDestDir
}
