package codec

import (
	"github.com/h2non/bimg"
)

// encodePNG re-encodes losslessly at maximum zlib compression effort.
// PNG has no lossy quality knob, so o.Quality is ignored.
func encodePNG(buf []byte, _ Options) ([]byte, error) {
	return bimg.NewImage(buf).Process(bimg.Options{
		Type:        bimg.PNG,
		Compression: 9,
	})
}
