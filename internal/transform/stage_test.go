package transform

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/blur-gate/internal/imaging"
)

func TestRun_MatchesDirectCalls(t *testing.T) {
	src := gradient(t, 8, 6)

	blurred, err := imaging.GaussianBlur(src, 3)
	if err != nil {
		t.Fatalf("GaussianBlur failed: %v", err)
	}
	lum, err := imaging.Luminance(blurred)
	if err != nil {
		t.Fatalf("Luminance failed: %v", err)
	}
	want, err := FlipHorizontal(lum)
	if err != nil {
		t.Fatalf("FlipHorizontal failed: %v", err)
	}

	got, err := Run(src, []Stage{
		GaussianBlurStage(3),
		LuminanceStage(),
		{Kind: KindFlipHorizontal},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for i := range want.Pix {
		if got.Pix[i] != want.Pix[i] {
			t.Fatalf("sample %d: got %v, want %v", i, got.Pix[i], want.Pix[i])
		}
	}
}

func TestRun_EmptyPipelineCopies(t *testing.T) {
	src := gradient(t, 3, 3)
	got, err := Run(src, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got == src {
		t.Error("empty pipeline returned its input")
	}
	if got.Pix[8] != src.Pix[8] {
		t.Errorf("sample 8: got %v, want %v", got.Pix[8], src.Pix[8])
	}
}

func TestRun_EveryKind(t *testing.T) {
	src := gradient(t, 5, 4)
	layer := solid(t, 5, 4, 128, 128, 128, 255)
	lut := LUTSet{R: InvertLUT(), G: IdentityLUT(), B: IdentityLUT(), A: IdentityLUT()}

	stages := []Stage{
		{Kind: KindIdentity},
		{Kind: KindLuminance},
		{Kind: KindGrayscale},
		{Kind: KindGrayscaleAverage},
		{Kind: KindThreshold, Level: 4},
		{Kind: KindInvert},
		{Kind: KindBrightnessContrast, Brightness: 0.1, Contrast: 1.2},
		{Kind: KindApplyLUT, LUT: &lut},
		{Kind: KindFlipHorizontal},
		{Kind: KindFlipVertical},
		{Kind: KindConvolve, Kernel: imaging.LaplaceKernel, Opaque: true},
		{Kind: KindConvolveFloat, Kernel: imaging.Kernel{1}},
		{Kind: KindSeparableConvolve, Vertical: imaging.Kernel{1, 2, 1}, Horizontal: imaging.Kernel{0.5, 0.5}},
		GaussianBlurStage(4),
		{Kind: KindLaplace},
		{Kind: KindSobel},
		{Kind: KindDistortSine, Amount: float(0.2)},
		{Kind: KindErode},
		BlendStage(Screen, layer),
	}

	for _, s := range stages {
		t.Run(string(s.Kind), func(t *testing.T) {
			out, err := Run(src, []Stage{s})
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if out.Width != src.Width || out.Height != src.Height {
				t.Errorf("dimensions: got %dx%d", out.Width, out.Height)
			}
			if err := out.Validate(); err != nil {
				t.Errorf("invalid output: %v", err)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	src := gradient(t, 3, 3)

	tests := []struct {
		name  string
		src   *imaging.Buffer
		stage Stage
		want  error
	}{
		{"unknown kind", src, Stage{Kind: "sharpen"}, ErrUnknownStage},
		{"blend without layer", src, Stage{Kind: KindBlend, Mode: Add}, ErrMissingLayer},
		{"bad kernel", src, Stage{Kind: KindConvolve, Kernel: imaging.Kernel{1, 2}}, imaging.ErrKernelShape},
		{"bad source", &imaging.Buffer{Width: 2, Height: 2}, Stage{Kind: KindIdentity}, imaging.ErrBufferLength},
		{"oversized source", &imaging.Buffer{Width: 1 << 31, Height: 1 << 31}, Stage{Kind: KindIdentity}, imaging.ErrInvalidDimensions},
		{"NaN blur diameter", src, GaussianBlurStage(math.NaN()), imaging.ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.src, []Stage{tt.stage})
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMachine_Step(t *testing.T) {
	src := gradient(t, 4, 4)
	m := NewMachine(src, []Stage{{Kind: KindInvert}, {Kind: KindInvert}})

	if m.Done() {
		t.Fatal("new machine reports done")
	}
	if err := m.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if got := m.Buffer().Pix[0]; got != 255 {
		t.Errorf("after one invert: got %v, want 255", got)
	}
	if err := m.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if !m.Done() {
		t.Error("machine not done after all stages")
	}
	if err := m.Step(); err != nil {
		t.Errorf("Step on a finished machine: %v", err)
	}
	if got := m.Buffer().Pix[0]; got != 0 {
		t.Errorf("after two inverts: got %v, want 0", got)
	}
}

func TestStage_JSON(t *testing.T) {
	data := `[
		{"kind":"gaussian_blur","diameter":5},
		{"kind":"luminance"},
		{"kind":"convolve","kernel":[1,0,-1,2,0,-2,1,0,-1],"opaque":true},
		{"kind":"threshold","level":10,"high":200}
	]`

	var stages []Stage
	if err := json.Unmarshal([]byte(data), &stages); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(stages) != 4 {
		t.Fatalf("got %d stages, want 4", len(stages))
	}
	if stages[0].Kind != KindGaussianBlur || stages[0].Diameter != 5 {
		t.Errorf("stage 0: got %+v", stages[0])
	}
	if len(stages[2].Kernel) != 9 || !stages[2].Opaque {
		t.Errorf("stage 2: got %+v", stages[2])
	}
	if stages[3].High == nil || *stages[3].High != 200 || stages[3].Low != nil {
		t.Errorf("stage 3: got %+v", stages[3])
	}
}
