package codec

import (
	"github.com/h2non/bimg"
)

// encodeWEBP re-encodes lossily at the requested quality. libvips picks the
// compression effort; bimg does not expose the webp effort parameter.
func encodeWEBP(buf []byte, o Options) ([]byte, error) {
	return bimg.NewImage(buf).Process(bimg.Options{
		Type:    bimg.WEBP,
		Quality: o.Quality,
	})
}
