package codec

import (
	"bytes"
	"image/gif"
)

// encodeGIF re-encodes through the standard library, which round-trips every
// animation frame along with loop count and per-frame delays. GIF is
// palette-based, so o.Quality does not apply.
func encodeGIF(buf []byte, _ Options) ([]byte, error) {
	g, err := gif.DecodeAll(bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := gif.EncodeAll(&out, g); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
