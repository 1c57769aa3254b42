// Package imaging provides the pixel buffer model and the convolution engine
// shared by the transform library and the blur scorer.
//
// A Buffer is a width/height tagged RGBA raster with interleaved float64
// samples. Every operation validates its input, allocates a fresh output
// buffer and never writes to its input, so buffers can be shared across
// goroutines once produced.
//
// # Sample Formats
//
// Buffers carry one of two storage formats:
//   - Clamped: samples are clamped to [0,255] and rounded half to even on
//     every write, the semantics of an 8-bit canvas. Final stages use this.
//   - Float: samples are stored unclamped for high-precision intermediates,
//     such as the first pass of a separable convolution or signed gradients.
//
// # Coordinate System
//
// (0,0) is the top-left pixel, X increases rightward and Y downward. The R
// sample of pixel (x, y) sits at index (y*Width+x)*4.
//
// # Border Handling
//
// Convolutions sample out-of-bounds coordinates by replicating the nearest
// in-bounds pixel. Zero padding would manufacture gradients at the borders.
//
// # Error Handling
//
// Functions return errors wrapping the package sentinels for:
//   - Non-positive dimensions (ErrInvalidDimensions)
//   - Sample count mismatches (ErrBufferLength)
//   - NaN or infinite samples and kernel weights (ErrNonFinite)
//   - Empty or non-square kernels (ErrEmptyKernel, ErrKernelShape)
//   - Buffers of different sizes combined by one operation (ErrDimensionMismatch)
//
// # Loading
//
// ImageCache and LoadFile decode PNG, JPEG, GIF, BMP, TIFF and WebP files,
// honouring EXIF orientation, into Clamped buffers.
package imaging
