// Package imaging re-encodes and stamps raster images.
package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Registers the WebP decoder.
)

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeGIF  = "image/gif"
	MimeBMP  = "image/bmp"
	MimeTIFF = "image/tiff"
)

// Transcoder re-encodes images as JPEG at a quality factor.
// There is no WebP encoder available, so output is always JPEG.
type Transcoder struct{}

func NewTranscoder() *Transcoder {
	return &Transcoder{}
}

// Transcode decodes data, flattens any transparency onto white and encodes
// the result as JPEG. quality is on a 0-1 scale.
func (t *Transcoder) Transcode(ctx context.Context, data []byte, mime string, quality float64) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	img, err := decode(data)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flatten(img), imaging.JPEG, imaging.JPEGQuality(jpegQuality(quality))); err != nil {
		return nil, "", fmt.Errorf("encode image: %w", err)
	}

	return buf.Bytes(), MimeJPEG, nil
}

func decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// flatten composites img over an opaque white background.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// jpegQuality maps a 0-1 factor onto the 1-100 JPEG scale.
func jpegQuality(quality float64) int {
	q := int(math.Round(quality * 100))
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}
