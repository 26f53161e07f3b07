// Package pdf stamps watermark text onto every page of a PDF document.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/iamNilotpal/squeeze/internal/core/domain"
	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/creator"
	"github.com/unidoc/unipdf/v3/model"
)

const MimePDF = "application/pdf"

// Watermarker implements ports.Watermarker for PDF documents.
type Watermarker struct{}

// New prepares the PDF library. An empty licenseKey leaves the library in
// its default licensing mode.
func New(licenseKey string) (*Watermarker, error) {
	if licenseKey != "" {
		if err := license.SetMeteredKey(licenseKey); err != nil {
			return nil, fmt.Errorf("set pdf license: %w", err)
		}
	}
	return &Watermarker{}, nil
}

func (w *Watermarker) Supports(mime string) bool {
	return mime == MimePDF
}

// Watermark draws opts.Text in Helvetica Bold on every page.
func (w *Watermarker) Watermark(
	ctx context.Context, data []byte, mime string, opts *domain.WatermarkOptions,
) ([]byte, string, error) {
	fill, err := domain.ParseColor(opts.Color)
	if err != nil {
		return nil, "", err
	}
	fill = Blend(fill, Opacity(opts.Opacity))

	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("create PDF reader: %w", err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, "", fmt.Errorf("get page count: %w", err)
	}

	font, err := model.NewStandard14Font(model.HelveticaBoldName)
	if err != nil {
		return nil, "", fmt.Errorf("load font: %w", err)
	}

	c := creator.New()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		page, err := reader.GetPage(i)
		if err != nil {
			return nil, "", fmt.Errorf("get page %d: %w", i, err)
		}

		if err := c.AddPage(page); err != nil {
			return nil, "", fmt.Errorf("add page %d: %w", i, err)
		}

		box, err := page.GetMediaBox()
		if err != nil {
			return nil, "", fmt.Errorf("page %d media box: %w", i, err)
		}

		width, height := box.Width(), box.Height()
		size := FontSize(opts.Size, width, height)
		textWidth := measure(font, opts.Text, size)

		for _, p := range Placements(opts.Position, width, height, textWidth, size) {
			para := c.NewParagraph(opts.Text)
			para.SetFont(font)
			para.SetFontSize(size)
			para.SetColor(creator.ColorRGBFrom8bit(fill.R, fill.G, fill.B))
			para.SetEnableWrap(false)
			para.SetAngle(p.Angle)
			// The creator measures from the top-left corner.
			para.SetPos(p.X, height-p.Y-size)

			if err := c.Draw(para); err != nil {
				return nil, "", fmt.Errorf("draw on page %d: %w", i, err)
			}
		}
	}

	var out bytes.Buffer
	if err := c.Write(&out); err != nil {
		return nil, "", fmt.Errorf("write PDF: %w", err)
	}

	return out.Bytes(), MimePDF, nil
}

// measure returns the advance width of text in points.
func measure(font *model.PdfFont, text string, size float64) float64 {
	var units float64
	for _, r := range text {
		if m, ok := font.GetRuneMetrics(r); ok {
			units += m.Wx
		}
	}
	return units * size / 1000
}
