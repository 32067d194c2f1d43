package imaging

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"
)

// Thumbnailer resizes image files to a fixed width and re-encodes them in
// their source format.
type Thumbnailer struct {
	// Filter is the resampling filter used for resizing.
	Filter imaging.ResampleFilter

	// JPEGQuality is the encoder quality (1-100) for JPEG output.
	JPEGQuality int
}

// NewThumbnailer returns a Thumbnailer using Lanczos resampling and JPEG
// quality 80.
func NewThumbnailer() *Thumbnailer {
	return &Thumbnailer{
		Filter:      imaging.Lanczos,
		JPEGQuality: 80,
	}
}

// Resize loads the image at path, scales it to width pixels and returns the
// encoded bytes.
//
// The height is computed from the source aspect ratio, rounded, and is at
// least 1. Images narrower than width are enlarged. EXIF orientation is
// applied before resizing. The output format follows the file extension
// (JPEG for .jpg/.jpeg, PNG for .png, and so on).
func (t *Thumbnailer) Resize(ctx context.Context, path string, width int) ([]byte, error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect format: %w", err)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resized := imaging.Resize(img, width, 0, t.Filter)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(t.JPEGQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
