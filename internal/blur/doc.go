// Package blur scores how blurry an image is from the width of its
// horizontal edges.
//
// The chain is:
//
//	DetectEdges -> ReducedPixels -> DetectBlur -> WidthCorrection
//
// DetectEdges optionally pre-blurs wide images, converts to luminance and
// applies a horizontal Sobel kernel with clamped 8-bit output. ReducedPixels
// keeps one channel per pixel. DetectBlur walks each row looking for spans
// that rise from zero to a peak of at least EdgeIntensityThreshold and
// reports their mean width as a percentage of the image width. Sharp images
// produce narrow spans; blurred ones produce wide spans or none at all.
//
// WidthCorrection maps that raw percentage onto a calibrated score. Larger
// scores mean blurrier images, and images with too few edges to judge
// score LowEdgeScore (100). Callers typically compare the rounded score to
// a policy threshold such as 1.0.
//
// All tunables live in Config; DefaultConfig holds the calibrated values and
// LoadConfig reads TOML overrides.
package blur
