package ports

import (
	"context"

	"github.com/iamNilotpal/squeeze/internal/core/domain"
)

// ImageTranscoder re-encodes an image at a quality factor (0-1).
// Returns the encoded bytes and their MIME type.
type ImageTranscoder interface {
	Transcode(ctx context.Context, data []byte, mime string, quality float64) ([]byte, string, error)
}

// Watermarker stamps text onto a file of a content type it supports.
// Returns the stamped bytes and their MIME type.
type Watermarker interface {
	Watermark(ctx context.Context, data []byte, mime string, opts *domain.WatermarkOptions) ([]byte, string, error)

	// Supports reports whether the MIME type can be stamped.
	Supports(mime string) bool
}

// MimeDetector guesses a MIME type from content.
type MimeDetector interface {
	Detect(data []byte) string
}
