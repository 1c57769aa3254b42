package transform

import (
	"fmt"

	"github.com/ironsheep/blur-gate/internal/imaging"
)

// Grayscale writes 0.3·R + 0.59·G + 0.11·B to every colour channel.
func Grayscale(src *imaging.Buffer) (*imaging.Buffer, error) {
	return imaging.WeightedGray(src, 0.3, 0.59, 0.11)
}

// GrayscaleAverage writes the unweighted mean of R, G and B to every colour
// channel.
func GrayscaleAverage(src *imaging.Buffer) (*imaging.Buffer, error) {
	const third = 1.0 / 3
	return imaging.WeightedGray(src, third, third, third)
}

// Threshold sets every colour channel to high where the grayscale value is
// at least level and to low elsewhere. Alpha is copied.
func Threshold(src *imaging.Buffer, level, high, low float64) (*imaging.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("threshold: %w", err)
	}
	dst, _ := imaging.NewBuffer(src.Width, src.Height, imaging.Clamped)
	for i := 0; i < len(src.Pix); i += imaging.Channels {
		v := low
		if 0.3*src.Pix[i]+0.59*src.Pix[i+1]+0.11*src.Pix[i+2] >= level {
			v = high
		}
		dst.Set(i, v)
		dst.Set(i+1, v)
		dst.Set(i+2, v)
		dst.Set(i+3, src.Pix[i+3])
	}
	return dst, nil
}

// Invert replaces every colour sample c with 255-c. Alpha is copied.
func Invert(src *imaging.Buffer) (*imaging.Buffer, error) {
	return ApplyLUT(src, LUTSet{R: InvertLUT(), G: InvertLUT(), B: InvertLUT(), A: IdentityLUT()})
}
