package blur

import (
	"fmt"
	"image"

	"github.com/ironsheep/blur-gate/internal/imaging"
)

// Measure runs the full scoring chain on buf: edge extraction, row
// reduction, span scoring and calibration for the buffer's own size. cfg is
// validated first.
func Measure(buf *imaging.Buffer, cfg Config) (Score, error) {
	if err := cfg.Validate(); err != nil {
		return Score{}, err
	}
	edges, err := DetectEdges(buf, cfg)
	if err != nil {
		return Score{}, err
	}
	rows, err := ReducedPixels(edges)
	if err != nil {
		return Score{}, err
	}
	raw, err := DetectBlur(rows, cfg)
	if err != nil {
		return Score{}, fmt.Errorf("detect blur: %w", err)
	}
	score := WidthCorrection(raw, buf.Width, buf.Height, cfg)

	imaging.Logger().Debug("blur measured",
		"width", score.Width, "height", score.Height,
		"edges", score.NumEdges,
		"raw", raw.AvgEdgeWidthPerc, "score", score.AvgEdgeWidthPerc)
	return score, nil
}

// MeasureImage converts img to a buffer and measures it.
func MeasureImage(img image.Image, cfg Config) (Score, error) {
	buf, err := imaging.FromImage(img)
	if err != nil {
		return Score{}, fmt.Errorf("failed to convert image: %w", err)
	}
	return Measure(buf, cfg)
}

// MeasureFile decodes the image at path and measures it.
func MeasureFile(path string, cfg Config) (Score, error) {
	buf, err := imaging.LoadFile(path)
	if err != nil {
		return Score{}, err
	}
	return Measure(buf, cfg)
}
