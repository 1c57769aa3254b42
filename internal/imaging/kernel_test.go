package imaging

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestKernel_Validate2D(t *testing.T) {
	tests := []struct {
		name string
		k    Kernel
		want error
	}{
		{"3x3", Kernel{0, 0, 0, 0, 1, 0, 0, 0, 0}, nil},
		{"1x1", Kernel{1}, nil},
		{"empty", Kernel{}, ErrEmptyKernel},
		{"not square", Kernel{1, 2, 3}, ErrKernelShape},
		{"NaN weight", Kernel{1, math.NaN(), 1, 1}, ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.k.Validate2D()
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestKernel_Validate1D(t *testing.T) {
	if err := (Kernel{1, 2}).Validate1D(); err != nil {
		t.Errorf("even-length 1D kernel rejected: %v", err)
	}
	if err := (Kernel{math.Inf(-1)}).Validate1D(); !errors.Is(err, ErrNonFinite) {
		t.Errorf("got %v, want ErrNonFinite", err)
	}
}

func TestOuterProduct(t *testing.T) {
	got := OuterProduct(Kernel{1, 2}, Kernel{3, 4, 5})
	want := []float64{3, 4, 5, 6, 8, 10}
	if !floats.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if len(OuterProduct(nil, Kernel{1})) != 0 {
		t.Error("outer product with an empty vector should be empty")
	}
}

func TestSobelKernels(t *testing.T) {
	wantH := []float64{-1, 0, 1, -2, 0, 2, -1, 0, 1}
	if got := SobelHorizontal(); !floats.Equal(got, wantH) {
		t.Errorf("SobelHorizontal: got %v, want %v", got, wantH)
	}

	wantV := []float64{-1, -2, -1, 0, 0, 0, 1, 2, 1}
	if got := SobelVertical(); !floats.Equal(got, wantV) {
		t.Errorf("SobelVertical: got %v, want %v", got, wantV)
	}

	// The edge extractor's kernel is the horizontal Sobel rotated 180 degrees.
	wantFlipped := []float64{1, 0, -1, 2, 0, -2, 1, 0, -1}
	if got := SobelHorizontal().Flipped(); !floats.Equal(got, wantFlipped) {
		t.Errorf("Flipped: got %v, want %v", got, wantFlipped)
	}
}

func TestGaussianKernel(t *testing.T) {
	tests := []struct {
		diameter float64
		wantLen  int
	}{
		{5, 5},
		{4, 5},
		{4.2, 5},
		{3, 3},
		{2, 3},
		{1.5, 3},
		{-5, 5},
	}

	for _, tt := range tests {
		k := GaussianKernel(tt.diameter)
		if len(k) != tt.wantLen {
			t.Errorf("GaussianKernel(%v): len %d, want %d", tt.diameter, len(k), tt.wantLen)
			continue
		}
		if math.Abs(k.Sum()-1) > 1e-12 {
			t.Errorf("GaussianKernel(%v): sum %v, want 1", tt.diameter, k.Sum())
		}
		for i := 0; i < len(k)/2; i++ {
			if math.Abs(k[i]-k[len(k)-1-i]) > 1e-15 {
				t.Errorf("GaussianKernel(%v) not symmetric: %v", tt.diameter, k)
				break
			}
			if k[i] >= k[i+1] {
				t.Errorf("GaussianKernel(%v) not increasing towards the centre: %v", tt.diameter, k)
				break
			}
		}
	}
}

func TestGaussianKernel_Diameter5Weights(t *testing.T) {
	// rho = (2.5+0.5)/3 = 1, so the raw weights are exp(-x²/2).
	raw := []float64{math.Exp(-2), math.Exp(-0.5), 1, math.Exp(-0.5), math.Exp(-2)}
	floats.Scale(1/floats.Sum(raw), raw)

	if got := GaussianKernel(5); !floats.EqualApprox(got, raw, 1e-12) {
		t.Errorf("got %v, want %v", got, raw)
	}
}

func TestGaussianKernel_Identity(t *testing.T) {
	for _, d := range []float64{0, 0.5, 1, -1, math.NaN()} {
		k := GaussianKernel(d)
		if len(k) != 1 || k[0] != 1 {
			t.Errorf("GaussianKernel(%v): got %v, want [1]", d, k)
		}
	}
}
