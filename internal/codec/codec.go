// Package codec provides image format detection and per-format re-encoding.
//
// Decoding and the lossy/lossless save paths for JPEG, PNG and WEBP are
// delegated to libvips via bimg; GIF is re-encoded with the standard
// library so animation frames survive (libvips writes single-frame GIFs).
package codec

import (
	"fmt"

	"github.com/h2non/bimg"
)

// Format is the actual encoded format of an image, derived from its decoded
// content rather than the file extension (the two may disagree).
type Format int

const (
	Other Format = iota // Decodable, but none of the four optimizable formats.
	JPEG
	PNG
	WEBP
	GIF
)

// String returns the lowercase format name used in logs.
func (f Format) String() string {
	switch f {
	case JPEG:
		return "jpeg"
	case PNG:
		return "png"
	case WEBP:
		return "webp"
	case GIF:
		return "gif"
	default:
		return "other"
	}
}

// formats maps libvips type names onto the optimizable formats. Anything
// absent here (tiff, heif, svg, pdf, ...) sniffs as Other.
var formats = map[string]Format{
	"jpeg": JPEG,
	"png":  PNG,
	"webp": WEBP,
	"gif":  GIF,
}

// Image describes a sniffed source image.
type Image struct {
	Format Format
	Alpha  bool // Source carries an alpha channel.
	Width  int
	Height int
}

// Sniff decodes the image header and returns its actual format and alpha
// flag. A file that libvips cannot load at all returns the loader's error;
// a loadable file in a format outside the four returns Format Other.
func Sniff(buf []byte) (Image, error) {
	meta, err := bimg.Metadata(buf)
	if err != nil {
		return Image{}, err
	}
	return Image{
		Format: formats[meta.Type],
		Alpha:  meta.Alpha,
		Width:  meta.Size.Width,
		Height: meta.Size.Height,
	}, nil
}

// Options carries the per-file encoding inputs.
type Options struct {
	Quality int  // JPEG/WEBP lossy quality. Ignored by PNG and GIF.
	Alpha   bool // Source has alpha; JPEG flattens it onto white.
}

type encodeFunc func(buf []byte, o Options) ([]byte, error)

var encoders = map[Format]encodeFunc{
	JPEG: encodeJPEG,
	PNG:  encodePNG,
	WEBP: encodeWEBP,
	GIF:  encodeGIF,
}

// Encode re-encodes buf in its own format with that format's optimization
// settings. The caller must pass a format obtained from [Sniff]; Other has
// no encoder and returns an error.
func Encode(buf []byte, f Format, o Options) ([]byte, error) {
	enc, ok := encoders[f]
	if !ok {
		return nil, fmt.Errorf("no encoder for format %s", f)
	}
	return enc(buf, o)
}
