// Package check provides codec diagnostics (--check mode) and the pre-run
// dependency gate (CheckDeps) for the libvips-backed encoders.
package check

import (
	"errors"
	"fmt"

	"github.com/h2non/bimg"
)

// ErrSaveUnsupported is returned by CheckDeps when the linked libvips cannot
// write one of the formats the optimizer re-encodes.
var ErrSaveUnsupported = errors.New("libvips build cannot save a required format")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// savers lists the formats written through libvips. GIF goes through the
// standard library and needs no runtime support check.
var savers = []struct {
	name string
	t    bimg.ImageType
}{
	{"JPEG", bimg.JPEG},
	{"PNG", bimg.PNG},
	{"WEBP", bimg.WEBP},
}

// RunCheck runs the interactive --check flow: prints the libvips version and
// per-format save support. Informational only; returns false if any required
// saver is missing.
func RunCheck(log Logger) bool {
	log.Info("=== Codec Check ===")
	log.Info("libvips %s (bimg %s)", bimg.VipsVersion, bimg.Version)

	ok := true
	for _, s := range savers {
		if bimg.IsTypeSupportedSave(s.t) {
			log.Success("%s: save supported", s.name)
		} else {
			log.Error("%s: save NOT supported by this libvips build", s.name)
			ok = false
		}
	}
	log.Success("GIF: standard library encoder (always available)")
	return ok
}

// CheckDeps is the pre-pipeline validation: every libvips-backed saver must
// be available, otherwise the batch would fail file by file.
func CheckDeps() error {
	for _, s := range savers {
		if !bimg.IsTypeSupportedSave(s.t) {
			return fmt.Errorf("%w: %s (libvips %s)", ErrSaveUnsupported, s.name, bimg.VipsVersion)
		}
	}
	return nil
}
