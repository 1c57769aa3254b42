package imaging

import "fmt"

// ITU-R BT.709 luma coefficients.
const (
	LumaR = 0.2126
	LumaG = 0.7152
	LumaB = 0.0722
)

// Luminance converts src to single-channel luminance
//
//	Y = 0.2126·R + 0.7152·G + 0.0722·B
//
// written identically to R, G and B. Alpha passes through unchanged. The
// result is a Clamped buffer.
func Luminance(src *Buffer) (*Buffer, error) {
	return WeightedGray(src, LumaR, LumaG, LumaB)
}

// WeightedGray writes wr·R + wg·G + wb·B to the three colour channels of a
// new Clamped buffer and copies alpha.
func WeightedGray(src *Buffer, wr, wg, wb float64) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("gray: %w", err)
	}
	dst, _ := NewBuffer(src.Width, src.Height, Clamped)
	for i := 0; i < len(src.Pix); i += Channels {
		v := wr*src.Pix[i] + wg*src.Pix[i+1] + wb*src.Pix[i+2]
		dst.store(i, v, v, v, src.Pix[i+3])
	}
	return dst, nil
}
