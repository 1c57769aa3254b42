package imaging

import (
	"fmt"
	"math"
)

// Convolve applies a square 2D kernel to every channel of src and returns a
// Clamped buffer.
//
// Out-of-bounds samples replicate the nearest edge pixel rather than reading
// zero, so image borders do not register as false edges. When opaque is
// true the output alpha is forced to 255 (a + 1·(255-a)); otherwise alpha is
// convolved like the colour channels.
//
// The kernel is correlated, not flipped: weight k[ky*S+kx] multiplies the
// sample at (x+kx-S/2, y+ky-S/2).
func Convolve(src *Buffer, k Kernel, opaque bool) (*Buffer, error) {
	return convolve2D(src, k, opaque, Clamped)
}

// ConvolveFloat is Convolve with a Float output buffer.
func ConvolveFloat(src *Buffer, k Kernel, opaque bool) (*Buffer, error) {
	return convolve2D(src, k, opaque, Float)
}

func convolve2D(src *Buffer, k Kernel, opaque bool, format SampleFormat) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("convolve: %w", err)
	}
	if err := k.Validate2D(); err != nil {
		return nil, fmt.Errorf("convolve: %w", err)
	}

	side := k.Side()
	half := side / 2
	w, h := src.Width, src.Height
	dst, _ := NewBuffer(w, h, format)
	alphaFac := alphaFactor(opaque)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float64
			for cy := 0; cy < side; cy++ {
				sy := clamp(y+cy-half, 0, h-1)
				for cx := 0; cx < side; cx++ {
					sx := clamp(x+cx-half, 0, w-1)
					off := (sy*w + sx) * Channels
					wt := k[cy*side+cx]
					r += src.Pix[off] * wt
					g += src.Pix[off+1] * wt
					b += src.Pix[off+2] * wt
					a += src.Pix[off+3] * wt
				}
			}
			dst.store(dst.Offset(x, y), r, g, b, a+alphaFac*(255-a))
		}
	}
	return dst, nil
}

// VerticalConvolve applies a 1D kernel down each column and returns a Float
// buffer.
func VerticalConvolve(src *Buffer, k Kernel, opaque bool) (*Buffer, error) {
	return convolve1D(src, k, opaque, true, Float)
}

// HorizontalConvolve applies a 1D kernel along each row and returns a Float
// buffer.
func HorizontalConvolve(src *Buffer, k Kernel, opaque bool) (*Buffer, error) {
	return convolve1D(src, k, opaque, false, Float)
}

func convolve1D(src *Buffer, k Kernel, opaque, vertical bool, format SampleFormat) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("convolve: %w", err)
	}
	if err := k.Validate1D(); err != nil {
		return nil, fmt.Errorf("convolve: %w", err)
	}

	half := len(k) / 2
	w, h := src.Width, src.Height
	dst, _ := NewBuffer(w, h, format)
	alphaFac := alphaFactor(opaque)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float64
			for c, wt := range k {
				sx, sy := x, y
				if vertical {
					sy = clamp(y+c-half, 0, h-1)
				} else {
					sx = clamp(x+c-half, 0, w-1)
				}
				off := (sy*w + sx) * Channels
				r += src.Pix[off] * wt
				g += src.Pix[off+1] * wt
				b += src.Pix[off+2] * wt
				a += src.Pix[off+3] * wt
			}
			dst.store(dst.Offset(x, y), r, g, b, a+alphaFac*(255-a))
		}
	}
	return dst, nil
}

// SeparableConvolve runs the vertical kernel into a Float intermediate, then
// the horizontal kernel into a Clamped result. It matches Convolve with
// OuterProduct(vert, horiz) at O(len(vert)+len(horiz)) per pixel.
func SeparableConvolve(src *Buffer, vert, horiz Kernel, opaque bool) (*Buffer, error) {
	return separable(src, vert, horiz, opaque, Clamped)
}

// SeparableConvolveFloat is SeparableConvolve with a Float result.
func SeparableConvolveFloat(src *Buffer, vert, horiz Kernel, opaque bool) (*Buffer, error) {
	return separable(src, vert, horiz, opaque, Float)
}

func separable(src *Buffer, vert, horiz Kernel, opaque bool, format SampleFormat) (*Buffer, error) {
	tmp, err := convolve1D(src, vert, opaque, true, Float)
	if err != nil {
		return nil, err
	}
	return convolve1D(tmp, horiz, opaque, false, format)
}

// GaussianBlur blurs src with a separable Gaussian of the given diameter.
// Alpha is blurred too. A diameter of at most 1 returns an unblurred
// Clamped copy; a NaN or infinite diameter is an error.
func GaussianBlur(src *Buffer, diameter float64) (*Buffer, error) {
	if math.IsNaN(diameter) || math.IsInf(diameter, 0) {
		return nil, fmt.Errorf("gaussian blur diameter %v: %w", diameter, ErrNonFinite)
	}
	k := GaussianKernel(diameter)
	if len(k) == 1 {
		return Identity(src)
	}
	Logger().Debug("gaussian blur", "diameter", diameter, "taps", len(k),
		"width", src.Width, "height", src.Height)
	return SeparableConvolve(src, k, k, false)
}

// Identity returns a Clamped copy of src.
func Identity(src *Buffer) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}
	return src.Clone(Clamped), nil
}

func (b *Buffer) store(off int, r, g, bl, a float64) {
	b.Set(off, r)
	b.Set(off+1, g)
	b.Set(off+2, bl)
	b.Set(off+3, a)
}

func alphaFactor(opaque bool) float64 {
	if opaque {
		return 1
	}
	return 0
}
