package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
)

// EncodedImage contains a buffer rendered as base64 PNG.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG renders b as an 8-bit PNG. Float samples are clamped.
func EncodePNG(b *Buffer) (*EncodedImage, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.ToNRGBA()); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &EncodedImage{
		Width:       b.Width,
		Height:      b.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Crop copies the region (x1,y1)-(x2,y2) of b into a new buffer of the same
// format. (x1,y1) is inclusive and (x2,y2) exclusive.
func Crop(b *Buffer, x1, y1, x2, y2 int) (*Buffer, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if x1 < 0 || y1 < 0 || x2 > b.Width || y2 > b.Height {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			x1, y1, x2, y2, b.Width, b.Height)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	out, _ := NewBuffer(x2-x1, y2-y1, b.Format)
	rowLen := out.Width * Channels
	for y := y1; y < y2; y++ {
		src := b.Pix[b.Offset(x1, y) : b.Offset(x1, y)+rowLen]
		copy(out.Pix[(y-y1)*rowLen:], src)
	}
	return out, nil
}
