package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Channels is the number of interleaved samples per pixel (R, G, B, A).
const Channels = 4

var (
	// ErrInvalidDimensions is returned when a buffer has a zero or negative width or height.
	ErrInvalidDimensions = errors.New("width and height must be positive")

	// ErrBufferLength is returned when len(Pix) != Width*Height*4.
	ErrBufferLength = errors.New("pixel data length does not match dimensions")

	// ErrNonFinite is returned when a sample or kernel weight is NaN or infinite.
	ErrNonFinite = errors.New("non-finite value")

	// ErrDimensionMismatch is returned when two buffers combined by one operation differ in size.
	ErrDimensionMismatch = errors.New("buffer dimensions do not match")
)

// SampleFormat selects how samples are stored when a stage writes them.
type SampleFormat int

const (
	// Clamped stores every sample clamped to [0,255] and rounded half to even,
	// matching 8-bit canvas semantics. NaN stores as 0.
	Clamped SampleFormat = iota

	// Float stores raw float64 samples for high-precision intermediate stages.
	Float
)

// String returns the format name used in logs and JSON.
func (f SampleFormat) String() string {
	switch f {
	case Clamped:
		return "clamped"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("SampleFormat(%d)", int(f))
	}
}

// Buffer is a width/height tagged RGBA raster with interleaved samples.
//
// Pix holds Width*Height*4 samples in R, G, B, A order, row-major from the
// top-left pixel. Buffers are treated as immutable once returned by a stage:
// every operation in this module allocates and returns a new Buffer.
type Buffer struct {
	Width  int
	Height int
	Pix    []float64
	Format SampleFormat
}

// NewBuffer allocates a zeroed buffer of the given size and format.
func NewBuffer(width, height int, format SampleFormat) (*Buffer, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height*Channels),
		Format: format,
	}, nil
}

// FromBytes wraps 8-bit RGBA samples, such as canvas ImageData or
// image.NRGBA.Pix with a tight stride, in a Clamped buffer.
func FromBytes(width, height int, data []uint8) (*Buffer, error) {
	b, err := NewBuffer(width, height, Clamped)
	if err != nil {
		return nil, err
	}
	if len(data) != len(b.Pix) {
		return nil, fmt.Errorf("buffer %dx%d has %d samples, want %d: %w",
			width, height, len(data), len(b.Pix), ErrBufferLength)
	}
	for i, v := range data {
		b.Pix[i] = float64(v)
	}
	return b, nil
}

// FromImage converts any image.Image to a Clamped buffer of unpremultiplied
// RGBA samples. The result is always anchored at (0,0).
func FromImage(img image.Image) (*Buffer, error) {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Bounds().Dx(), nrgba.Bounds().Dy()
	b, err := NewBuffer(w, h, Clamped)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*Channels]
		dst := b.Pix[y*w*Channels:]
		for i, v := range row {
			dst[i] = float64(v)
		}
	}
	return b, nil
}

// Validate reports whether the buffer is well formed: positive dimensions,
// matching sample count and finite samples.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("nil buffer: %w", ErrInvalidDimensions)
	}
	if err := checkDimensions(b.Width, b.Height); err != nil {
		return err
	}
	if want := b.Width * b.Height * Channels; len(b.Pix) != want {
		return fmt.Errorf("buffer %dx%d has %d samples, want %d: %w",
			b.Width, b.Height, len(b.Pix), want, ErrBufferLength)
	}
	for i, v := range b.Pix {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("sample %d: %w", i, ErrNonFinite)
		}
	}
	return nil
}

// checkDimensions rejects non-positive sizes and sizes whose sample count
// does not fit in an int.
func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("buffer %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	if width > math.MaxInt/Channels/height {
		return fmt.Errorf("buffer %dx%d is too large: %w", width, height, ErrInvalidDimensions)
	}
	return nil
}

// SameSize reports an error unless both buffers share width and height.
func (b *Buffer) SameSize(o *Buffer) error {
	if b.Width != o.Width || b.Height != o.Height {
		return fmt.Errorf("%dx%d vs %dx%d: %w", b.Width, b.Height, o.Width, o.Height, ErrDimensionMismatch)
	}
	return nil
}

// Offset returns the index of the R sample of pixel (x, y).
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * Channels
}

// Set stores v at index i according to the buffer's sample format.
func (b *Buffer) Set(i int, v float64) {
	if b.Format == Clamped {
		v = ClampSample(v)
	}
	b.Pix[i] = v
}

// Clone returns a deep copy in the given format. Samples are re-stored, so
// cloning a Float buffer into Clamped clamps it.
func (b *Buffer) Clone(format SampleFormat) *Buffer {
	out := &Buffer{
		Width:  b.Width,
		Height: b.Height,
		Pix:    make([]float64, len(b.Pix)),
		Format: format,
	}
	for i, v := range b.Pix {
		out.Set(i, v)
	}
	return out
}

// ToNRGBA renders the buffer as an 8-bit unpremultiplied image, clamping
// Float samples.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, v := range b.Pix {
		img.Pix[i] = uint8(ClampSample(v))
	}
	return img
}

// ClampSample applies 8-bit clamped storage semantics to v: NaN becomes 0,
// values are limited to [0,255] and rounded half to even.
func ClampSample(v float64) float64 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return math.RoundToEven(v)
}

// clamp constrains an integer value to the range [lo, hi].
// Used for replicate-border sampling in convolution.
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
