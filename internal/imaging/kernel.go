package imaging

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmptyKernel is returned when a kernel has no weights.
	ErrEmptyKernel = errors.New("kernel has no weights")

	// ErrKernelShape is returned when a 2D kernel's length is not a perfect square.
	ErrKernelShape = errors.New("2D kernel length is not a perfect square")
)

// Kernel is an ordered sequence of convolution weights.
//
// A 2D kernel is stored row-major with side length round(sqrt(len)) and is
// centred at floor(side/2). A 1D kernel, used by the separable passes, is
// centred at floor(len/2).
type Kernel []float64

// Side returns the side length of a square 2D kernel.
func (k Kernel) Side() int {
	return int(math.Round(math.Sqrt(float64(len(k)))))
}

// Validate1D checks that the kernel is non-empty and every weight is finite.
func (k Kernel) Validate1D() error {
	if len(k) == 0 {
		return ErrEmptyKernel
	}
	for i, w := range k {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("kernel weight %d: %w", i, ErrNonFinite)
		}
	}
	return nil
}

// Validate2D checks Validate1D and additionally that the kernel is square.
func (k Kernel) Validate2D() error {
	if err := k.Validate1D(); err != nil {
		return err
	}
	if s := k.Side(); s*s != len(k) {
		return fmt.Errorf("kernel of %d weights: %w", len(k), ErrKernelShape)
	}
	return nil
}

// Flipped returns the kernel rotated by 180 degrees. For a 1D kernel this
// reverses it.
func (k Kernel) Flipped() Kernel {
	out := make(Kernel, len(k))
	for i, w := range k {
		out[len(k)-1-i] = w
	}
	return out
}

// Sum returns the total of all weights.
func (k Kernel) Sum() float64 {
	return floats.Sum(k)
}

// OuterProduct returns the row-major len(col)×len(row) kernel whose entry
// (i, j) is col[i]*row[j]. Convolving with it is equivalent to a vertical
// pass with col followed by a horizontal pass with row.
//
// A square result requires len(col) == len(row).
func OuterProduct(col, row Kernel) Kernel {
	if len(col) == 0 || len(row) == 0 {
		return Kernel{}
	}
	m := mat.NewDense(len(col), len(row), nil)
	m.Outer(1, mat.NewVecDense(len(col), append([]float64(nil), col...)),
		mat.NewVecDense(len(row), append([]float64(nil), row...)))

	raw := m.RawMatrix()
	out := make(Kernel, 0, len(col)*len(row))
	for i := 0; i < raw.Rows; i++ {
		out = append(out, raw.Data[i*raw.Stride:i*raw.Stride+raw.Cols]...)
	}
	return out
}

// GaussianKernel builds a normalised 1D Gaussian kernel for the given blur
// diameter.
//
// The radius is diameter/2 and the kernel length is ceil(diameter), bumped
// to the next odd number when even. The standard deviation is
// rho = (radius+0.5)/3 and each weight is
//
//	exp(-x²/(2·rho²)) / sqrt(2π·rho²)
//
// before normalisation to a unit sum. Negative diameters are treated as
// their absolute value. A diameter of at most 1 yields the identity kernel
// [1].
func GaussianKernel(diameter float64) Kernel {
	diameter = math.Abs(diameter)
	if diameter <= 1 || math.IsNaN(diameter) || math.IsInf(diameter, 0) {
		return Kernel{1}
	}

	radius := diameter / 2
	n := int(math.Ceil(diameter))
	if n%2 == 0 {
		n++
	}
	rho := (radius + 0.5) / 3
	rhoSq := rho * rho
	factor := 1 / math.Sqrt(2*math.Pi*rhoSq)

	k := make(Kernel, n)
	middle := n / 2
	for i := range k {
		x := float64(i - middle)
		k[i] = factor * math.Exp(-x*x/(2*rhoSq))
	}
	floats.Scale(1/floats.Sum(k), k)
	return k
}

// Sobel component vectors. The horizontal derivative is the outer product of
// the smoothing vector (vertical pass) and the sign vector (horizontal pass).
var (
	SobelSignVector  = Kernel{-1, 0, 1}
	SobelScaleVector = Kernel{1, 2, 1}
)

// SobelHorizontal returns the 3×3 kernel approximating the derivative along x:
//
//	-1 0 1
//	-2 0 2
//	-1 0 1
func SobelHorizontal() Kernel {
	return OuterProduct(SobelScaleVector, SobelSignVector)
}

// SobelVertical returns the 3×3 kernel approximating the derivative along y.
func SobelVertical() Kernel {
	return OuterProduct(SobelSignVector, SobelScaleVector)
}

// LaplaceKernel is the 8-neighbour Laplacian.
var LaplaceKernel = Kernel{
	-1, -1, -1,
	-1, 8, -1,
	-1, -1, -1,
}
