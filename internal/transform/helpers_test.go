package transform

import (
	"testing"

	"github.com/ironsheep/blur-gate/internal/imaging"
)

// solid returns a Clamped buffer filled with one RGBA value.
func solid(t *testing.T, width, height int, r, g, b, a float64) *imaging.Buffer {
	t.Helper()
	buf, err := imaging.NewBuffer(width, height, imaging.Clamped)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	for i := 0; i < len(buf.Pix); i += imaging.Channels {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = r, g, b, a
	}
	return buf
}

// gradient returns a buffer whose pixel (x,y) is (x, y, x+y, 255).
func gradient(t *testing.T, width, height int) *imaging.Buffer {
	t.Helper()
	buf, err := imaging.NewBuffer(width, height, imaging.Clamped)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := buf.Offset(x, y)
			buf.Pix[off], buf.Pix[off+1], buf.Pix[off+2], buf.Pix[off+3] =
				float64(x), float64(y), float64(x+y), 255
		}
	}
	return buf
}

func pixel(b *imaging.Buffer, x, y int) [4]float64 {
	off := b.Offset(x, y)
	return [4]float64{b.Pix[off], b.Pix[off+1], b.Pix[off+2], b.Pix[off+3]}
}

func float(v float64) *float64 { return &v }
