package blur

import (
	"errors"
	"fmt"
	"math"

	"github.com/BurntSushi/toml"

	"github.com/ironsheep/blur-gate/internal/imaging"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid blur config")

// WidthBucket scales the edge-width percentage of images wider than MinWidth.
// The bucket with the largest MinWidth below the image width applies.
type WidthBucket struct {
	MinWidth int     `toml:"min_width" json:"min_width"`
	Factor   float64 `toml:"factor" json:"factor"`
}

// LegacySensor re-linearises negative scores from one fixed capture
// resolution: score*Scale + Offset.
type LegacySensor struct {
	Width  int     `toml:"width" json:"width"`
	Height int     `toml:"height" json:"height"`
	Scale  float64 `toml:"scale" json:"scale"`
	Offset float64 `toml:"offset" json:"offset"`
}

// Config holds the tunable constants of edge extraction, scoring and
// calibration. Start from DefaultConfig and override fields; the zero value
// is not usable.
type Config struct {
	// EdgeIntensityThreshold is the minimum gradient a span must reach
	// before closing to count as an edge.
	EdgeIntensityThreshold uint8 `toml:"edge_intensity_threshold" json:"edge_intensity_threshold"`

	// EdgeOpenLevel opens an edge where the gradient is at or below it. The
	// default 0 is an exact-zero test on the clamped gradient channel.
	EdgeOpenLevel uint8 `toml:"edge_open_level" json:"edge_open_level"`

	// PreBlurWidthThreshold is the image width from which edge extraction
	// blurs first to suppress noise.
	PreBlurWidthThreshold int `toml:"pre_blur_width_threshold" json:"pre_blur_width_threshold"`

	// PreBlurDiameter is the Gaussian diameter of that pre-blur.
	PreBlurDiameter float64 `toml:"pre_blur_diameter" json:"pre_blur_diameter"`

	// WidthBuckets must be sorted by MinWidth with non-decreasing factors.
	WidthBuckets []WidthBucket `toml:"width_buckets" json:"width_buckets"`

	// Images with fewer edges than EdgeCountBiasThreshold have
	// EdgeCountBias subtracted from their score.
	EdgeCountBiasThreshold int     `toml:"edge_count_bias_threshold" json:"edge_count_bias_threshold"`
	EdgeCountBias          float64 `toml:"edge_count_bias" json:"edge_count_bias"`

	// Images with fewer edges than LowEdgeCountThreshold score
	// LowEdgeScore outright.
	LowEdgeCountThreshold int     `toml:"low_edge_count_threshold" json:"low_edge_count_threshold"`
	LowEdgeScore          float64 `toml:"low_edge_score" json:"low_edge_score"`

	LegacySensor LegacySensor `toml:"legacy_sensor" json:"legacy_sensor"`

	// SobelKernel is the 3×3 horizontal gradient kernel. The default
	// responds positively to bright-to-dark transitions.
	SobelKernel imaging.Kernel `toml:"sobel_kernel" json:"sobel_kernel"`
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		EdgeIntensityThreshold: 20,
		EdgeOpenLevel:          0,
		PreBlurWidthThreshold:  360,
		PreBlurDiameter:        5.0,
		WidthBuckets: []WidthBucket{
			{MinWidth: 500, Factor: 1.93},
			{MinWidth: 1000, Factor: 2.81},
			{MinWidth: 1500, Factor: 3.65},
			{MinWidth: 2000, Factor: 4.76},
			{MinWidth: 2500, Factor: 5.63},
			{MinWidth: 3000, Factor: 6.70},
		},
		EdgeCountBiasThreshold: 3000,
		EdgeCountBias:          1.0,
		LowEdgeCountThreshold:  1000,
		LowEdgeScore:           100,
		LegacySensor:           LegacySensor{Width: 318, Height: 239, Scale: 6.3, Offset: 2.016},
		SobelKernel:            imaging.SobelHorizontal().Flipped(),
	}
}

// LoadConfig reads TOML overrides from path on top of DefaultConfig and
// validates the result. Keys missing from the file keep their defaults.
//
//	edge_intensity_threshold = 25
//	pre_blur_diameter = 3.0
//
//	[[width_buckets]]
//	min_width = 800
//	factor = 2.0
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, undec[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that would make scoring
// meaningless.
func (c Config) Validate() error {
	if err := c.SobelKernel.Validate2D(); err != nil {
		return fmt.Errorf("%w: sobel kernel: %v", ErrInvalidConfig, err)
	}
	if math.IsNaN(c.PreBlurDiameter) || math.IsInf(c.PreBlurDiameter, 0) {
		return fmt.Errorf("%w: pre-blur diameter %v", ErrInvalidConfig, c.PreBlurDiameter)
	}
	for i, b := range c.WidthBuckets {
		if math.IsNaN(b.Factor) || math.IsInf(b.Factor, 0) || b.Factor <= 0 {
			return fmt.Errorf("%w: width bucket %d factor %v", ErrInvalidConfig, i, b.Factor)
		}
		if i == 0 {
			continue
		}
		prev := c.WidthBuckets[i-1]
		if b.MinWidth <= prev.MinWidth {
			return fmt.Errorf("%w: width buckets not sorted at %d", ErrInvalidConfig, i)
		}
		if b.Factor < prev.Factor {
			return fmt.Errorf("%w: width bucket factors decrease at %d", ErrInvalidConfig, i)
		}
	}
	return nil
}

// widthFactor returns the multiplier for an image of the given width, or 1
// when no bucket applies.
func (c Config) widthFactor(width int) float64 {
	f := 1.0
	for _, b := range c.WidthBuckets {
		if width > b.MinWidth {
			f = b.Factor
		}
	}
	return f
}
