package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunServer(t *testing.T) {
	in := strings.NewReader(`{"jsonrpc":"2.0","id":7,"method":"ping"}` + "\n")
	var out bytes.Buffer

	if code := runServer(nil, in, &out); code != 0 {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	var resp struct {
		ID float64 `json:"id"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", out.String(), err)
	}
	if resp.ID != 7 {
		t.Errorf("id: got %v, want 7", resp.ID)
	}
}

func TestRunServer_Errors(t *testing.T) {
	badConfig := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(badConfig, []byte("no_such_key = 1\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus"}},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "missing.toml")}},
		{"invalid config", []string{"--config", badConfig}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if code := runServer(tt.args, strings.NewReader(""), &out); code != 2 {
				t.Errorf("exit code: got %d, want 2", code)
			}
			if out.Len() != 0 {
				t.Errorf("unexpected output: %q", out.String())
			}
		})
	}
}

func TestRunScore_ExitCodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.png")
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.NRGBA{90, 90, 90, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	f.Close()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no files", nil, 2},
		{"flat image is blurry", []string{path}, 1},
		{"lenient threshold", []string{"--threshold", "200", path}, 0},
		{"unreadable file", []string{"--threshold", "200", filepath.Join(t.TempDir(), "nope.png")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := runScore(tt.args); code != tt.want {
				t.Errorf("exit code: got %d, want %d", code, tt.want)
			}
		})
	}
}
