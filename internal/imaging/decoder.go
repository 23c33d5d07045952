package imaging

import (
	"bytes"
	"errors"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// ErrEmptyImage is returned when a decoded image has no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Pixels is a decoded image normalized to interleaved 8-bit RGB. The upload
// itself never touches disk; decoding happens entirely in memory.
type Pixels struct {
	Width  int
	Height int
	Data   []uint8 // len == Width*Height*3, R G B per pixel
}

// Decode parses raw uploaded bytes as one of the supported raster formats
// (PNG, JPEG, GIF, BMP) and flattens the result to an RGB buffer.
func Decode(data []byte) (*Pixels, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}

	px := &Pixels{
		Width:  width,
		Height: height,
		Data:   make([]uint8, 0, width*height*3),
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			px.Data = append(px.Data, uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}
	return px, nil
}
