package blur

import (
	"fmt"

	"github.com/ironsheep/blur-gate/internal/imaging"
)

// RowProfile is one image row of single-channel intensities.
type RowProfile []uint8

// ReducedPixels keeps channel 0 of every pixel, grouped into rows. After
// luminance and Sobel filtering the colour channels are identical, so one
// is enough. Float samples are clamped.
func ReducedPixels(edges *imaging.Buffer) ([]RowProfile, error) {
	if err := edges.Validate(); err != nil {
		return nil, fmt.Errorf("reduce pixels: %w", err)
	}
	rows := make([]RowProfile, edges.Height)
	for y := range rows {
		row := make(RowProfile, edges.Width)
		off := edges.Offset(0, y)
		for x := range row {
			row[x] = uint8(imaging.ClampSample(edges.Pix[off+x*imaging.Channels]))
		}
		rows[y] = row
	}
	return rows, nil
}
