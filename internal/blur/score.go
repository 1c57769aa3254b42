package blur

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRows is returned when DetectBlur receives no rows or empty rows.
	ErrNoRows = errors.New("no pixel rows")

	// ErrRaggedRows is returned when rows differ in length.
	ErrRaggedRows = errors.New("pixel rows differ in length")
)

// Score is the blur measurement of one image.
type Score struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	NumEdges int `json:"num_edges"`

	// AvgEdgeWidth is the mean span width in pixels.
	AvgEdgeWidth float64 `json:"avg_edge_width"`

	// AvgEdgeWidthPerc is AvgEdgeWidth as a percentage of the row width.
	// After WidthCorrection it is the calibrated score and may be negative
	// or forced to LowEdgeScore.
	AvgEdgeWidthPerc float64 `json:"avg_edge_width_perc"`
}

// EdgeSpan is a run of columns within one row judged to be one sharp
// transition. Start is the last column where the gradient was at the open
// level and End the first column where it fell again.
type EdgeSpan struct {
	Start int   `json:"start"`
	End   int   `json:"end"`
	Peak  uint8 `json:"peak"`
}

// Width returns the number of columns strictly between Start and End.
func (s EdgeSpan) Width() int {
	return s.End - s.Start - 1
}

// ScanRow finds the qualifying edge spans of one row, left to right.
//
// An edge opens at every column whose value is at or below
// cfg.EdgeOpenLevel, replacing any edge already open. Once past the opening
// column, the first value lower than its predecessor closes the edge; the
// span counts only if that predecessor reached cfg.EdgeIntensityThreshold.
// Closing always clears the open edge, and the closing column may itself
// open the next one.
func ScanRow(row RowProfile, cfg Config) []EdgeSpan {
	var spans []EdgeSpan
	start := -1
	for x, v := range row {
		if start >= 0 {
			if prev := row[x-1]; v < prev {
				if prev >= cfg.EdgeIntensityThreshold {
					spans = append(spans, EdgeSpan{Start: start, End: x, Peak: prev})
				}
				start = -1
			}
		}
		if v <= cfg.EdgeOpenLevel {
			start = x
		}
	}
	return spans
}

// DetectBlur scores reduced gradient rows by the mean width of their edge
// spans. Sharp images produce many narrow spans; blurred ones fewer, wider
// spans. With no spans both averages are 0.
//
// Rows must be non-empty and of equal length.
func DetectBlur(rows []RowProfile, cfg Config) (Score, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Score{}, ErrNoRows
	}
	width := len(rows[0])

	var numEdges, sum int
	for y, row := range rows {
		if len(row) != width {
			return Score{}, fmt.Errorf("row %d has %d values, want %d: %w", y, len(row), width, ErrRaggedRows)
		}
		for _, s := range ScanRow(row, cfg) {
			numEdges++
			sum += s.Width()
		}
	}

	score := Score{Width: width, Height: len(rows), NumEdges: numEdges}
	if numEdges > 0 {
		score.AvgEdgeWidth = float64(sum) / float64(numEdges)
		score.AvgEdgeWidthPerc = score.AvgEdgeWidth / float64(width) * 100
	}
	return score, nil
}
