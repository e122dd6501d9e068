package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into paths, behavior, display, and utility.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, bad quality value).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("imgslim", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var showHelp, showVersion bool
	var forceColor, noColor bool

	// Paths.
	fs.StringVar(&cfg.SrcDir, "src", "", "Source images folder (recursive)")
	fs.StringVar(&cfg.DestDir, "dest", "", "Destination folder (default: "+DefaultDestDir+")")
	fs.BoolVar(&cfg.InPlace, "inplace", false, "Overwrite original files (dangerous)")

	// Behavior.
	fs.IntVar(&cfg.Quality, "quality", cfg.Quality, "JPEG/WEBP quality (1-100)")
	fs.IntVar(&cfg.Quality, "q", cfg.Quality, "Same as --quality")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Measure savings without keeping output")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")

	// Display.
	fs.BoolVar(&forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")

	// Utility.
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run codec diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showVersion, "V", false, "Same as --version")
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "imgslim v"+version)
		os.Exit(0)
	}

	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceColor {
		cfg.ColorMode = ColorAlways
	}

	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected positional arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg.SrcDir = NormalizeDirArg(cfg.SrcDir)
	cfg.DestDir = NormalizeDirArg(cfg.DestDir)
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "imgslim v" + version + " — web image optimizer (same format, smaller files)"},
		{"", ""},
		{"  imgslim --src <dir> [OPTIONS]", ""},
		{"", ""},
		{"Paths", ""},
		{"  --src <dir>", "Source images folder, scanned recursively (required)"},
		{"  --dest <dir>", "Destination folder (default: " + DefaultDestDir + ")"},
		{"  --inplace", "Overwrite originals (mutually exclusive with --dest)"},
		{"", ""},
		{"Behavior", ""},
		{"  -q, --quality <1-100>", "JPEG/WEBP quality (default: 85)"},
		{"  -d, --dry-run", "Full-cost estimate; output is measured, then discarded"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Codec diagnostics (libvips version, format support)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
