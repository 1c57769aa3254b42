package imaging

// GradientX approximates the horizontal intensity derivative of src with the
// separable Sobel pair: the smoothing vector down columns, then the sign
// vector along rows. The result is a Float buffer carrying signed values.
func GradientX(src *Buffer) (*Buffer, error) {
	return SeparableConvolveFloat(src, SobelScaleVector, SobelSignVector, false)
}

// GradientY approximates the vertical intensity derivative of src. The
// result is a Float buffer carrying signed values.
func GradientY(src *Buffer) (*Buffer, error) {
	return SeparableConvolveFloat(src, SobelSignVector, SobelScaleVector, false)
}
