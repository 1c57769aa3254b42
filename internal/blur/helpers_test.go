package blur

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/blur-gate/internal/imaging"
)

// flatBuffer returns an opaque buffer of one grey level.
func flatBuffer(t *testing.T, width, height int, level float64) *imaging.Buffer {
	t.Helper()
	buf, err := imaging.NewBuffer(width, height, imaging.Clamped)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	for i := 0; i < len(buf.Pix); i += imaging.Channels {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = level, level, level, 255
	}
	return buf
}

// lineBuffer returns a white buffer with a one-pixel black vertical line at
// column x.
func lineBuffer(t *testing.T, width, height, x int) *imaging.Buffer {
	t.Helper()
	buf := flatBuffer(t, width, height, 255)
	for y := 0; y < height; y++ {
		off := buf.Offset(x, y)
		buf.Pix[off], buf.Pix[off+1], buf.Pix[off+2] = 0, 0, 0
	}
	return buf
}

// writePNG encodes a flat grey image into dir and returns its path.
func writePNG(t *testing.T, dir, name string, width, height int, level uint8) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{level, level, level, 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}
