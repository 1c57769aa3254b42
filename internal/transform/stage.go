package transform

import (
	"errors"
	"fmt"

	"github.com/ironsheep/blur-gate/internal/imaging"
)

var (
	// ErrUnknownStage is returned for a Stage whose Kind is not recognised.
	ErrUnknownStage = errors.New("unknown stage kind")

	// ErrMissingLayer is returned for a blend Stage without an upper layer.
	ErrMissingLayer = errors.New("blend stage has no layer")
)

// Kind identifies a pipeline stage.
type Kind string

const (
	KindIdentity           Kind = "identity"
	KindLuminance          Kind = "luminance"
	KindGrayscale          Kind = "grayscale"
	KindGrayscaleAverage   Kind = "grayscale_avg"
	KindThreshold          Kind = "threshold"
	KindInvert             Kind = "invert"
	KindBrightnessContrast Kind = "brightness_contrast"
	KindApplyLUT           Kind = "apply_lut"
	KindFlipHorizontal     Kind = "horizontal_flip"
	KindFlipVertical       Kind = "vertical_flip"
	KindConvolve           Kind = "convolve"
	KindConvolveFloat      Kind = "convolve_float"
	KindSeparableConvolve  Kind = "separable_convolve"
	KindGaussianBlur       Kind = "gaussian_blur"
	KindLaplace            Kind = "laplace"
	KindSobel              Kind = "sobel"
	KindDistortSine        Kind = "distort_sine"
	KindErode              Kind = "erode"
	KindBlend              Kind = "blend"
)

// Stage describes one pipeline step. Kind selects the transform; only the
// fields that kind documents are read.
type Stage struct {
	Kind Kind `json:"kind"`

	// gaussian_blur
	Diameter float64 `json:"diameter,omitempty"`

	// convolve, convolve_float, separable_convolve
	Kernel     imaging.Kernel `json:"kernel,omitempty"`
	Vertical   imaging.Kernel `json:"vertical,omitempty"`
	Horizontal imaging.Kernel `json:"horizontal,omitempty"`
	Opaque     bool           `json:"opaque,omitempty"`

	// threshold; High defaults to 255 and Low to 0
	Level float64  `json:"level,omitempty"`
	High  *float64 `json:"high,omitempty"`
	Low   *float64 `json:"low,omitempty"`

	// brightness_contrast
	Brightness float64 `json:"brightness,omitempty"`
	Contrast   float64 `json:"contrast,omitempty"`

	// apply_lut
	LUT *LUTSet `json:"lut,omitempty"`

	// distort_sine; Amount defaults to 0.5 and YAmount to Amount
	Amount  *float64 `json:"amount,omitempty"`
	YAmount *float64 `json:"yamount,omitempty"`

	// blend: Layer is the upper buffer. LayerPath is resolved to Layer by
	// callers that load files; Run never reads it.
	Mode      BlendMode       `json:"mode,omitempty"`
	Layer     *imaging.Buffer `json:"-"`
	LayerPath string          `json:"layer_path,omitempty"`
}

// GaussianBlurStage returns a gaussian_blur stage.
func GaussianBlurStage(diameter float64) Stage {
	return Stage{Kind: KindGaussianBlur, Diameter: diameter}
}

// LuminanceStage returns a luminance stage.
func LuminanceStage() Stage {
	return Stage{Kind: KindLuminance}
}

// ConvolveStage returns a Clamped 2D convolve stage.
func ConvolveStage(k imaging.Kernel, opaque bool) Stage {
	return Stage{Kind: KindConvolve, Kernel: k, Opaque: opaque}
}

// BlendStage returns a blend stage with layer above the running buffer.
func BlendStage(mode BlendMode, layer *imaging.Buffer) Stage {
	return Stage{Kind: KindBlend, Mode: mode, Layer: layer}
}

// apply executes the stage on src.
func (s Stage) apply(src *imaging.Buffer) (*imaging.Buffer, error) {
	switch s.Kind {
	case KindIdentity:
		return imaging.Identity(src)
	case KindLuminance:
		return imaging.Luminance(src)
	case KindGrayscale:
		return Grayscale(src)
	case KindGrayscaleAverage:
		return GrayscaleAverage(src)
	case KindThreshold:
		return Threshold(src, s.Level, orDefault(s.High, 255), orDefault(s.Low, 0))
	case KindInvert:
		return Invert(src)
	case KindBrightnessContrast:
		return BrightnessContrast(src, s.Brightness, s.Contrast)
	case KindApplyLUT:
		set := LUTSet{R: IdentityLUT(), G: IdentityLUT(), B: IdentityLUT(), A: IdentityLUT()}
		if s.LUT != nil {
			set = *s.LUT
		}
		return ApplyLUT(src, set)
	case KindFlipHorizontal:
		return FlipHorizontal(src)
	case KindFlipVertical:
		return FlipVertical(src)
	case KindConvolve:
		return imaging.Convolve(src, s.Kernel, s.Opaque)
	case KindConvolveFloat:
		return imaging.ConvolveFloat(src, s.Kernel, s.Opaque)
	case KindSeparableConvolve:
		return imaging.SeparableConvolve(src, s.Vertical, s.Horizontal, s.Opaque)
	case KindGaussianBlur:
		return imaging.GaussianBlur(src, s.Diameter)
	case KindLaplace:
		return Laplace(src)
	case KindSobel:
		return Sobel(src)
	case KindDistortSine:
		amount := orDefault(s.Amount, 0.5)
		return DistortSine(src, amount, orDefault(s.YAmount, amount))
	case KindErode:
		return Erode(src)
	case KindBlend:
		if s.Layer == nil {
			return nil, ErrMissingLayer
		}
		return Blend(src, s.Layer, s.Mode)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, s.Kind)
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Machine is the state of a running pipeline: the current buffer and the
// stages still to execute.
type Machine struct {
	buf       *imaging.Buffer
	remaining []Stage
	step      int
}

// NewMachine starts a pipeline at src.
func NewMachine(src *imaging.Buffer, stages []Stage) *Machine {
	return &Machine{buf: src, remaining: stages}
}

// Done reports whether every stage has run.
func (m *Machine) Done() bool {
	return len(m.remaining) == 0
}

// Buffer returns the current buffer.
func (m *Machine) Buffer() *imaging.Buffer {
	return m.buf
}

// Step runs the next stage. On error the machine is left unchanged.
func (m *Machine) Step() error {
	if m.Done() {
		return nil
	}
	s := m.remaining[0]
	out, err := s.apply(m.buf)
	if err != nil {
		return fmt.Errorf("stage %d (%s): %w", m.step, s.Kind, err)
	}
	imaging.Logger().Debug("pipeline stage", "step", m.step, "kind", string(s.Kind),
		"width", out.Width, "height", out.Height, "format", out.Format.String())
	m.buf = out
	m.remaining = m.remaining[1:]
	m.step++
	return nil
}

// Run threads src through stages in order and returns the final buffer.
// An empty pipeline returns a Clamped copy of src.
func Run(src *imaging.Buffer, stages []Stage) (*imaging.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline source: %w", err)
	}
	if len(stages) == 0 {
		return imaging.Identity(src)
	}
	m := NewMachine(src, stages)
	for !m.Done() {
		if err := m.Step(); err != nil {
			return nil, err
		}
	}
	return m.Buffer(), nil
}
