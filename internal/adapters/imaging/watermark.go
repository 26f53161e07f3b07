package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/iamNilotpal/squeeze/internal/core/domain"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	edgeMargin    = 20 // Distance of a bottom-right stamp from the edges, in pixels.
	diagonalAngle = 30 // Counter-clockwise rotation of diagonal stamps, in degrees.
	gridDivisions = 3  // Diagonal stamps repeat every width/3 and height/3.
	stampQuality  = 92 // JPEG quality for stamped output.
)

// Watermarker stamps text onto raster images and keeps the source format
// where it can be encoded.
type Watermarker struct{}

func NewWatermarker() *Watermarker {
	return &Watermarker{}
}

func (w *Watermarker) Supports(mime string) bool {
	return domain.IsImageMime(mime)
}

// Watermark draws opts.Text onto the image at full resolution.
func (w *Watermarker) Watermark(
	ctx context.Context, data []byte, mime string, opts *domain.WatermarkOptions,
) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	src, err := decode(data)
	if err != nil {
		return nil, "", err
	}

	fill, err := domain.ParseColor(opts.Color)
	if err != nil {
		return nil, "", err
	}

	out := Stamp(src, opts.Text, fill, opts.Size, opts.Opacity, opts.Position)

	format, outMime := outputFormat(mime)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, format, imaging.JPEGQuality(stampQuality)); err != nil {
		return nil, "", fmt.Errorf("encode image: %w", err)
	}

	return buf.Bytes(), outMime, nil
}

// Stamp returns a copy of src with text composited at the given position.
func Stamp(
	src image.Image, text string, fill color.Color, size, opacity float64, position domain.Position,
) *image.NRGBA {
	canvas := imaging.Clone(src)
	label := renderText(text, fill, size)

	for _, pt := range placements(position, canvas.Bounds().Size(), label.Bounds().Size()) {
		stamp := label
		if pt.rotated {
			stamp = imaging.Rotate(label, diagonalAngle, color.Transparent)
		}
		// Placements are centres or corners of the unrotated label; re-centre rotated stamps.
		at := pt.at
		if pt.rotated {
			at = at.Add(label.Bounds().Size().Div(2)).Sub(stamp.Bounds().Size().Div(2))
		}
		canvas = imaging.Overlay(canvas, stamp, at, opacity)
	}

	return canvas
}

type placement struct {
	at      image.Point // Top-left corner of the unrotated label.
	rotated bool
}

// placements computes where labels go on a canvas. Centre and diagonal
// stamps are centred on their anchor; bottom-right stamps are right and
// bottom aligned.
func placements(position domain.Position, canvas, label image.Point) []placement {
	centred := func(x, y float64) image.Point {
		return image.Pt(int(math.Round(x))-label.X/2, int(math.Round(y))-label.Y/2)
	}

	switch position {
	case domain.PositionCenter:
		return []placement{{at: centred(float64(canvas.X)/2, float64(canvas.Y)/2)}}
	case domain.PositionBottomRight:
		return []placement{{at: image.Pt(canvas.X-edgeMargin-label.X, canvas.Y-edgeMargin-label.Y)}}
	default:
		stepX := float64(canvas.X) / gridDivisions
		stepY := float64(canvas.Y) / gridDivisions

		var out []placement
		for i := 0; i <= gridDivisions; i++ {
			for j := 0; j <= gridDivisions; j++ {
				out = append(out, placement{at: centred(float64(i)*stepX, float64(j)*stepY), rotated: true})
			}
		}
		return out
	}
}

// renderText draws text with the built-in bitmap face and scales it so the
// line height matches size pixels.
func renderText(text string, fill color.Color, size float64) *image.NRGBA {
	face := basicfont.Face7x13
	metrics := face.Metrics()

	drawer := &font.Drawer{Face: face}
	width := drawer.MeasureString(text).Ceil()
	height := metrics.Height.Ceil()
	if width < 1 {
		width = 1
	}

	tile := image.NewNRGBA(image.Rect(0, 0, width, height))
	drawer.Dst = tile
	drawer.Src = image.NewUniform(fill)
	drawer.Dot = fixed.P(0, metrics.Ascent.Ceil())
	drawer.DrawString(text)

	target := int(math.Round(size))
	if target < 1 {
		target = 1
	}
	if target == height {
		return tile
	}

	return imaging.Resize(tile, 0, target, imaging.Linear)
}

func outputFormat(mime string) (imaging.Format, string) {
	switch mime {
	case MimePNG:
		return imaging.PNG, MimePNG
	case MimeGIF:
		return imaging.GIF, MimeGIF
	case MimeBMP:
		return imaging.BMP, MimeBMP
	case MimeTIFF:
		return imaging.TIFF, MimeTIFF
	default:
		return imaging.JPEG, MimeJPEG
	}
}
