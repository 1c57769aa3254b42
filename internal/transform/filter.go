package transform

import (
	"fmt"
	"math"

	"github.com/ironsheep/blur-gate/internal/imaging"
)

// Laplace convolves src with the 8-neighbour Laplacian and forces full
// opacity.
func Laplace(src *imaging.Buffer) (*imaging.Buffer, error) {
	return imaging.Convolve(src, imaging.LaplaceKernel, true)
}

// Sobel renders gradient magnitudes of the grayscale image: R holds |∂x|,
// G holds |∂y|, B holds (|∂x|+|∂y|)/4 and alpha is 255.
func Sobel(src *imaging.Buffer) (*imaging.Buffer, error) {
	gray, err := Grayscale(src)
	if err != nil {
		return nil, fmt.Errorf("sobel: %w", err)
	}
	gx, err := imaging.GradientX(gray)
	if err != nil {
		return nil, fmt.Errorf("sobel: %w", err)
	}
	gy, err := imaging.GradientY(gray)
	if err != nil {
		return nil, fmt.Errorf("sobel: %w", err)
	}

	dst, _ := imaging.NewBuffer(src.Width, src.Height, imaging.Clamped)
	for i := 0; i < len(dst.Pix); i += imaging.Channels {
		x := math.Abs(gx.Pix[i])
		y := math.Abs(gy.Pix[i])
		dst.Set(i, x)
		dst.Set(i+1, y)
		dst.Set(i+2, (x+y)/4)
		dst.Set(i+3, 255)
	}
	return dst, nil
}

// Erode keeps only the upper-left boundary of the zero-valued regions of
// channel 0: a zero pixel whose left or upper neighbour is non-zero becomes
// 0 and every other pixel becomes 255. Neighbours outside the image
// replicate the edge. The output is opaque.
func Erode(src *imaging.Buffer) (*imaging.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("erode: %w", err)
	}
	w, h := src.Width, src.Height
	dst, _ := imaging.NewBuffer(w, h, imaging.Clamped)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := 255.0
			if src.Pix[src.Offset(x, y)] == 0 &&
				(src.Pix[src.Offset(max(0, x-1), y)] != 0 ||
					src.Pix[src.Offset(x, max(0, y-1))] != 0) {
				v = 0
			}
			off := dst.Offset(x, y)
			dst.Set(off, v)
			dst.Set(off+1, v)
			dst.Set(off+2, v)
			dst.Set(off+3, 255)
		}
	}
	return dst, nil
}
