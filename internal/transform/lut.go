package transform

import (
	"fmt"
	"math"

	"github.com/ironsheep/blur-gate/internal/imaging"
)

// LUT maps an 8-bit sample to a new 8-bit sample.
type LUT [256]uint8

// LUTSet holds one lookup table per channel.
type LUTSet struct {
	R LUT `json:"r"`
	G LUT `json:"g"`
	B LUT `json:"b"`
	A LUT `json:"a"`
}

// IdentityLUT maps every value to itself.
func IdentityLUT() LUT {
	var l LUT
	for i := range l {
		l[i] = uint8(i)
	}
	return l
}

// InvertLUT maps v to 255-v.
func InvertLUT() LUT {
	var l LUT
	for i := range l {
		l[i] = uint8(255 - i)
	}
	return l
}

// CurveLUT builds a step curve from control points sorted by input value.
// Entry i takes the output of the last point whose input is strictly below
// i, or 0 before the first such point.
func CurveLUT(points [][2]uint8) LUT {
	var l LUT
	var p [2]uint8
	j := 0
	for i := range l {
		for j < len(points) && int(points[j][0]) < i {
			p = points[j]
			j++
		}
		l[i] = p[1]
	}
	return l
}

// BrightnessContrastLUT maps v to v·contrast + 128·(1-contrast) +
// 255·brightness, clamped to [0,255] and truncated. Brightness 0 and
// contrast 1 give the identity.
func BrightnessContrastLUT(brightness, contrast float64) LUT {
	var l LUT
	adjust := -128*contrast + 128 + 255*brightness
	for i := range l {
		c := float64(i)*contrast + adjust
		l[i] = uint8(math.Max(0, math.Min(255, c)))
	}
	return l
}

// ApplyLUT maps each channel through its table. Samples are clamped to
// 8-bit before lookup.
func ApplyLUT(src *imaging.Buffer, set LUTSet) (*imaging.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("apply lut: %w", err)
	}
	dst, _ := imaging.NewBuffer(src.Width, src.Height, imaging.Clamped)
	tables := [imaging.Channels]*LUT{&set.R, &set.G, &set.B, &set.A}
	for i, v := range src.Pix {
		dst.Pix[i] = float64(tables[i%imaging.Channels][int(imaging.ClampSample(v))])
	}
	return dst, nil
}

// BrightnessContrast applies BrightnessContrastLUT to the colour channels.
func BrightnessContrast(src *imaging.Buffer, brightness, contrast float64) (*imaging.Buffer, error) {
	l := BrightnessContrastLUT(brightness, contrast)
	return ApplyLUT(src, LUTSet{R: l, G: l, B: l, A: IdentityLUT()})
}
