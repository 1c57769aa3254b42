package blur

import (
	"math"
	"testing"
)

func TestWidthCorrection(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name          string
		score         Score
		width, height int
		want          float64
	}{
		{"narrow many edges", Score{NumEdges: 5000, AvgEdgeWidthPerc: 1}, 400, 300, 1},
		{"bucket boundary is exclusive", Score{NumEdges: 5000, AvgEdgeWidthPerc: 1}, 500, 300, 1},
		{"first bucket", Score{NumEdges: 5000, AvgEdgeWidthPerc: 1}, 501, 300, 1.93},
		{"top bucket", Score{NumEdges: 5000, AvgEdgeWidthPerc: 1}, 4000, 3000, 6.70},
		{"edge count bias", Score{NumEdges: 2000, AvgEdgeWidthPerc: 1.5}, 400, 300, 0.5},
		{"legacy sensor", Score{NumEdges: 2000, AvgEdgeWidthPerc: 0.5}, 318, 239, -0.5*6.3 + 2.016},
		{"legacy sensor positive", Score{NumEdges: 2000, AvgEdgeWidthPerc: 2}, 318, 239, 1},
		{"other size negative", Score{NumEdges: 2000, AvgEdgeWidthPerc: 0.5}, 320, 240, -0.5},
		{"too few edges", Score{NumEdges: 999, AvgEdgeWidthPerc: 0.1}, 4000, 3000, 100},
		{"zero edges", Score{}, 318, 239, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WidthCorrection(tt.score, tt.width, tt.height, cfg)
			if math.Abs(got.AvgEdgeWidthPerc-tt.want) > 1e-9 {
				t.Errorf("AvgEdgeWidthPerc: got %v, want %v", got.AvgEdgeWidthPerc, tt.want)
			}
			if got.NumEdges != tt.score.NumEdges {
				t.Errorf("NumEdges changed: got %d, want %d", got.NumEdges, tt.score.NumEdges)
			}
		})
	}
}

func TestWidthCorrection_Monotone(t *testing.T) {
	cfg := DefaultConfig()
	raw := Score{NumEdges: 5000, AvgEdgeWidthPerc: 1}

	prev := 0.0
	for width := 100; width <= 4000; width += 100 {
		got := WidthCorrection(raw, width, 1000, cfg).AvgEdgeWidthPerc
		if got < prev {
			t.Fatalf("correction decreased at width %d: got %v after %v", width, got, prev)
		}
		prev = got
	}

	wide := WidthCorrection(raw, 3200, 1000, cfg).AvgEdgeWidthPerc
	narrow := WidthCorrection(raw, 2200, 1000, cfg).AvgEdgeWidthPerc
	if wide < narrow {
		t.Errorf("3200px got %v, want >= 2200px %v", wide, narrow)
	}
}

func TestWidthCorrection_DoesNotModifyInput(t *testing.T) {
	raw := Score{NumEdges: 10, AvgEdgeWidthPerc: 0.3}
	_ = WidthCorrection(raw, 318, 239, DefaultConfig())
	if raw.AvgEdgeWidthPerc != 0.3 {
		t.Errorf("input modified: got %v, want 0.3", raw.AvgEdgeWidthPerc)
	}
}
