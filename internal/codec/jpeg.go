package codec

import (
	"github.com/h2non/bimg"
)

// white is the flatten background for alpha sources. JPEG cannot represent
// transparency, so transparent pixels are composited onto opaque white.
var white = bimg.Color{R: 255, G: 255, B: 255}

// encodeJPEG re-encodes at the requested quality with progressive scan
// ordering. Metadata is not stripped, so embedded EXIF carries over to the
// output unchanged.
func encodeJPEG(buf []byte, o Options) ([]byte, error) {
	opts := bimg.Options{
		Type:      bimg.JPEG,
		Quality:   o.Quality,
		Interlace: true,
	}
	if o.Alpha {
		opts.Background = white
	}
	return bimg.NewImage(buf).Process(opts)
}
