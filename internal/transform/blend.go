package transform

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/fcolor"

	"github.com/ironsheep/blur-gate/internal/imaging"
)

// BlendMode selects how an upper layer combines with a lower one.
type BlendMode string

const (
	Darken     BlendMode = "darken"
	Lighten    BlendMode = "lighten"
	Multiply   BlendMode = "multiply"
	Screen     BlendMode = "screen"
	Add        BlendMode = "add"
	Subtract   BlendMode = "subtract"
	Difference BlendMode = "difference"
)

// channelFuncs work in the 8-bit domain: a is the lower sample, b the upper.
var channelFuncs = map[BlendMode]func(a, b float64) float64{
	Darken:     math.Min,
	Lighten:    math.Max,
	Multiply:   func(a, b float64) float64 { return a * b / 255 },
	Screen:     func(a, b float64) float64 { return a + b - a*b/255 },
	Add:        func(a, b float64) float64 { return a + b },
	Subtract:   func(a, b float64) float64 { return a + b - 255 },
	Difference: func(a, b float64) float64 { return math.Abs(a - b) },
}

// Blend composites above onto below with the given mode. Colour channels use
// the mode's formula; alpha is always a + (255-a)·b/255. Both buffers must
// have the same size.
func Blend(below, above *imaging.Buffer, mode BlendMode) (*imaging.Buffer, error) {
	fn, ok := channelFuncs[mode]
	if !ok {
		return nil, fmt.Errorf("unknown blend mode: %s", mode)
	}
	if err := below.Validate(); err != nil {
		return nil, fmt.Errorf("blend below: %w", err)
	}
	if err := above.Validate(); err != nil {
		return nil, fmt.Errorf("blend above: %w", err)
	}
	if err := below.SameSize(above); err != nil {
		return nil, fmt.Errorf("blend: %w", err)
	}

	// bild reads and writes Pix bytes as-is, so unpremultiplied samples pass
	// through untouched.
	out := blend.Blend(rawRGBA(below), rawRGBA(above), func(c0, c1 fcolor.RGBAF64) fcolor.RGBAF64 {
		a0, a1 := c0.A*255, c1.A*255
		return fcolor.RGBAF64{
			R: unit(fn(c0.R*255, c1.R*255)),
			G: unit(fn(c0.G*255, c1.G*255)),
			B: unit(fn(c0.B*255, c1.B*255)),
			A: unit(a0 + (255-a0)*a1/255),
		}
	})
	return imaging.FromBytes(below.Width, below.Height, out.Pix)
}

func rawRGBA(b *imaging.Buffer) *image.RGBA {
	n := b.ToNRGBA()
	return &image.RGBA{Pix: n.Pix, Stride: n.Stride, Rect: n.Rect}
}

// unit rounds v to an 8-bit level and returns it in bild's [0,1] scale,
// offset by half a level so bild's truncation lands on the rounded value.
func unit(v float64) float64 {
	return (imaging.ClampSample(v) + 0.5) / 255
}
