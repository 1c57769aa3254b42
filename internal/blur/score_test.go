package blur

import (
	"errors"
	"reflect"
	"testing"
)

func TestScanRow(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		row  RowProfile
		want []EdgeSpan
	}{
		{"single edge", RowProfile{0, 56, 248, 255, 0}, []EdgeSpan{{Start: 0, End: 4, Peak: 255}}},
		{"peak below threshold", RowProfile{0, 10, 15, 5}, nil},
		{"reopen moves start", RowProfile{0, 0, 0, 50, 30}, []EdgeSpan{{Start: 2, End: 4, Peak: 50}}},
		{"fall before any open", RowProfile{50, 30, 0, 40, 10}, []EdgeSpan{{Start: 2, End: 4, Peak: 40}}},
		{"closing column opens next", RowProfile{0, 30, 0, 40, 0}, []EdgeSpan{
			{Start: 0, End: 2, Peak: 30},
			{Start: 2, End: 4, Peak: 40},
		}},
		{"rise without fall", RowProfile{0, 10, 20, 30}, nil},
		{"no zero", RowProfile{10, 200, 100}, nil},
		{"empty", RowProfile{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanRow(tt.row, cfg)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ScanRow(%v): got %v, want %v", tt.row, got, tt.want)
			}
		})
	}
}

func TestScanRow_OpenLevel(t *testing.T) {
	cfg := DefaultConfig()
	row := RowProfile{3, 50, 10}

	if got := ScanRow(row, cfg); len(got) != 0 {
		t.Errorf("default open level: got %v, want no spans", got)
	}

	cfg.EdgeOpenLevel = 5
	got := ScanRow(row, cfg)
	want := []EdgeSpan{{Start: 0, End: 2, Peak: 50}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("open level 5: got %v, want %v", got, want)
	}
}

func TestEdgeSpan_Width(t *testing.T) {
	if got := (EdgeSpan{Start: 10, End: 14}).Width(); got != 3 {
		t.Errorf("Width: got %d, want 3", got)
	}
	if got := (EdgeSpan{Start: 10, End: 11}).Width(); got != 0 {
		t.Errorf("adjacent Width: got %d, want 0", got)
	}
}

func TestDetectBlur(t *testing.T) {
	cfg := DefaultConfig()
	rows := []RowProfile{
		{0, 56, 248, 255, 0, 0, 0, 0, 0, 0},
		{0, 30, 0, 40, 0, 0, 0, 0, 0, 0},
	}
	score, err := DetectBlur(rows, cfg)
	if err != nil {
		t.Fatalf("DetectBlur failed: %v", err)
	}
	if score.Width != 10 || score.Height != 2 {
		t.Errorf("size: got %dx%d, want 10x2", score.Width, score.Height)
	}
	if score.NumEdges != 3 {
		t.Errorf("NumEdges: got %d, want 3", score.NumEdges)
	}
	// widths 3, 1, 1
	if want := 5.0 / 3; score.AvgEdgeWidth != want {
		t.Errorf("AvgEdgeWidth: got %v, want %v", score.AvgEdgeWidth, want)
	}
	if want := 5.0 / 3 / 10 * 100; score.AvgEdgeWidthPerc != want {
		t.Errorf("AvgEdgeWidthPerc: got %v, want %v", score.AvgEdgeWidthPerc, want)
	}
}

func TestDetectBlur_NoEdges(t *testing.T) {
	rows := []RowProfile{{0, 0, 0}, {5, 5, 5}}
	score, err := DetectBlur(rows, DefaultConfig())
	if err != nil {
		t.Fatalf("DetectBlur failed: %v", err)
	}
	if score.NumEdges != 0 || score.AvgEdgeWidth != 0 || score.AvgEdgeWidthPerc != 0 {
		t.Errorf("got %+v, want zero edges and zero averages", score)
	}
}

func TestDetectBlur_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows []RowProfile
		want error
	}{
		{"nil", nil, ErrNoRows},
		{"empty row", []RowProfile{{}}, ErrNoRows},
		{"ragged", []RowProfile{{0, 1}, {0}}, ErrRaggedRows},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DetectBlur(tt.rows, DefaultConfig())
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}
