package blur

import (
	"fmt"

	"github.com/ironsheep/blur-gate/internal/imaging"
	"github.com/ironsheep/blur-gate/internal/transform"
)

// EdgeStages returns the transform pipeline that DetectEdges runs for an
// image of the given width: an optional Gaussian pre-blur, luminance, then
// the opaque horizontal Sobel convolution.
func EdgeStages(width int, cfg Config) []transform.Stage {
	stages := make([]transform.Stage, 0, 3)
	if width >= cfg.PreBlurWidthThreshold {
		stages = append(stages, transform.GaussianBlurStage(cfg.PreBlurDiameter))
	}
	return append(stages,
		transform.LuminanceStage(),
		transform.ConvolveStage(cfg.SobelKernel, true),
	)
}

// DetectEdges extracts the horizontal gradient of src.
//
// Images at least cfg.PreBlurWidthThreshold wide are blurred first so that
// sensor noise does not register as edges. The result is a Clamped buffer
// whose R, G and B channels hold the same gradient clamped to [0,255]:
// transitions of the polarity the kernel rejects saturate at exactly 0.
func DetectEdges(src *imaging.Buffer, cfg Config) (*imaging.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("detect edges: %w", err)
	}
	out, err := transform.Run(src, EdgeStages(src.Width, cfg))
	if err != nil {
		return nil, fmt.Errorf("detect edges: %w", err)
	}
	return out, nil
}
