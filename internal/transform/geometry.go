package transform

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	bimg "github.com/ironsheep/blur-gate/internal/imaging"
)

// FlipHorizontal mirrors src left to right.
func FlipHorizontal(src *bimg.Buffer) (*bimg.Buffer, error) {
	return flip(src, imaging.FlipH)
}

// FlipVertical mirrors src top to bottom.
func FlipVertical(src *bimg.Buffer) (*bimg.Buffer, error) {
	return flip(src, imaging.FlipV)
}

func flip(src *bimg.Buffer, fn func(image.Image) *image.NRGBA) (*bimg.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("flip: %w", err)
	}
	out := fn(src.ToNRGBA())
	return bimg.FromBytes(src.Width, src.Height, out.Pix)
}

// DistortSine displaces every pixel along a full sine period in each
// direction. amount scales the horizontal displacement and yamount the
// vertical one, as fractions of a quarter of the image size. Source
// positions are clamped to the image and sampled with standard bilinear
// weights.
func DistortSine(src *bimg.Buffer, amount, yamount float64) (*bimg.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("distort sine: %w", err)
	}
	w, h := src.Width, src.Height
	dst, _ := bimg.NewBuffer(w, h, bimg.Clamped)

	for y := 0; y < h; y++ {
		srcY := float64(y) + wave(y, h)*yamount*float64(h)/4
		srcY = math.Max(math.Min(srcY, float64(h-1)), 0)

		for x := 0; x < w; x++ {
			srcX := float64(x) + wave(x, w)*amount*float64(w)/4
			srcX = math.Max(math.Min(srcX, float64(w-1)), 0)

			var px [bimg.Channels]float64
			bilinear(src, srcX, srcY, &px)
			off := dst.Offset(x, y)
			for c, v := range px {
				dst.Set(off+c, v)
			}
		}
	}
	return dst, nil
}

// wave returns -sin(2π·i/(n-1)), or 0 for a single-pixel axis.
func wave(i, n int) float64 {
	if n < 2 {
		return 0
	}
	return -math.Sin(float64(i) / float64(n-1) * math.Pi * 2)
}

// bilinear samples src at (x, y) with the standard product weights: the four
// neighbours get (1-fx)(1-fy), fx(1-fy), (1-fx)fy and fx·fy, where fx and fy
// are the fractional offsets from the top-left neighbour. This is not the
// additive weighting ((x1-x)+(y1-y) and so on, normalised) some canvas
// filters use, so results differ from those filters off the pixel grid.
// Integral coordinates return the pixel unchanged.
func bilinear(src *bimg.Buffer, x, y float64, out *[bimg.Channels]float64) {
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := int(math.Ceil(x)), int(math.Ceil(y))
	fx, fy := x-float64(x0), y-float64(y0)

	a := src.Offset(x0, y0)
	b := src.Offset(x1, y0)
	c := src.Offset(x0, y1)
	d := src.Offset(x1, y1)
	for ch := range out {
		top := src.Pix[a+ch]*(1-fx) + src.Pix[b+ch]*fx
		bottom := src.Pix[c+ch]*(1-fx) + src.Pix[d+ch]*fx
		out[ch] = top*(1-fy) + bottom*fy
	}
}
