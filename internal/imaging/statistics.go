package imaging

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Statistics holds the pixel-level measurements derived from one upload.
// The zero value means "no image-derived signal": decoding failed and
// downstream scoring must not lean on any of these fields.
type Statistics struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	RedMean    float64 `json:"red_mean"`
	GreenMean  float64 `json:"green_mean"`
	BlueMean   float64 `json:"blue_mean"`
}

// Valid reports whether the statistics were actually computed from pixels.
func (s Statistics) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

func (s Statistics) String() string {
	return fmt.Sprintf("{%dx%d brightness=%.2f contrast=%.2f}", s.Width, s.Height, s.Brightness, s.Contrast)
}

// Analyzer computes descriptive statistics from uploaded image bytes.
type Analyzer struct {
	log *zap.Logger
}

func NewAnalyzer(log *zap.Logger) *Analyzer {
	return &Analyzer{log: log.Named("imaging")}
}

// Analyze decodes the upload and computes brightness, contrast, and channel
// means. Any decode or shape failure is absorbed here: the caller gets the
// zero Statistics and the error stays in the server log.
func (a *Analyzer) Analyze(data []byte) Statistics {
	px, err := Decode(data)
	if err != nil {
		a.log.Warn("image analysis failed", zap.Error(err))
		return Statistics{}
	}
	return computeStatistics(px)
}

// computeStatistics runs a single pass over the RGB samples. Brightness is
// the arithmetic mean over every sample of every channel; contrast is the
// population standard deviation of the same sample set.
func computeStatistics(px *Pixels) Statistics {
	n := len(px.Data)
	if n == 0 || n%3 != 0 {
		return Statistics{}
	}

	var sum, sumSq float64
	var redSum, greenSum, blueSum float64
	for i := 0; i < n; i += 3 {
		r := float64(px.Data[i])
		g := float64(px.Data[i+1])
		b := float64(px.Data[i+2])
		sum += r + g + b
		sumSq += r*r + g*g + b*b
		redSum += r
		greenSum += g
		blueSum += b
	}

	samples := float64(n)
	pixels := samples / 3
	mean := sum / samples
	variance := sumSq/samples - mean*mean
	if variance < 0 {
		variance = 0
	}

	return Statistics{
		Width:      px.Width,
		Height:     px.Height,
		Brightness: mean,
		Contrast:   math.Sqrt(variance),
		RedMean:    redSum / pixels,
		GreenMean:  greenSum / pixels,
		BlueMean:   blueSum / pixels,
	}
}
