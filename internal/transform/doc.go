// Package transform is a library of whole-image transforms over
// imaging.Buffer plus a small pipeline interpreter that chains them.
//
// Transforms cover grayscale variants, thresholding, inversion, lookup-table
// curves, brightness/contrast, flips, sine distortion, blend modes, Laplace,
// Sobel magnitude and erosion. Each one is a pure function from input
// buffer(s) to a new buffer.
//
// # Pipelines
//
// A pipeline is an ordered list of Stage descriptors. Each Stage names its
// Kind and carries that kind's parameters; Run threads a buffer through
// them one step at a time. There is no lookup of functions by name at run
// time: every Kind maps to exactly one case in Machine.Step.
//
//	out, err := transform.Run(src, []transform.Stage{
//	    transform.GaussianBlurStage(5),
//	    transform.LuminanceStage(),
//	    transform.ConvolveStage(kernel, true),
//	})
//
// # Workers
//
// Serve executes Requests received on a channel and posts Responses,
// using the same Run function as in-process callers. It is the only
// concurrency in this package; Run itself is synchronous.
package transform
