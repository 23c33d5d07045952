package imaging

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/nfnt/resize"
)

const thumbnailQuality = 80

// Thumbnail re-encodes the upload as a JPEG preview bounded by maxDim on the
// longer edge, for embedding in the report page without shipping the full
// upload twice. Images already within bounds are only re-encoded.
func Thumbnail(data []byte, maxDim uint) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if uint(bounds.Dx()) > maxDim || uint(bounds.Dy()) > maxDim {
		img = resize.Thumbnail(maxDim, maxDim, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
