package watermark_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/iamNilotpal/squeeze/internal/adapters/imaging"
	"github.com/iamNilotpal/squeeze/internal/core/domain"
	"github.com/iamNilotpal/squeeze/internal/core/ports"
	"github.com/iamNilotpal/squeeze/internal/core/services/watermark"
	cerrors "github.com/iamNilotpal/squeeze/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWatermarker struct{}

func (failingWatermarker) Supports(mime string) bool { return mime == "application/pdf" }

func (failingWatermarker) Watermark(
	context.Context, []byte, string, *domain.WatermarkOptions,
) ([]byte, string, error) {
	return nil, "", errors.New("read pdf: unexpected EOF")
}

type recorder struct {
	opts *domain.WatermarkOptions
}

func (r *recorder) Supports(mime string) bool { return strings.HasPrefix(mime, "text/") }

func (r *recorder) Watermark(
	_ context.Context, data []byte, mime string, opts *domain.WatermarkOptions,
) ([]byte, string, error) {
	r.opts = opts
	return append([]byte(opts.Text+":"), data...), mime, nil
}

func whitePNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 200, 120))
	for y := 0; y < 120; y++ {
		for x := 0; x < 200; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newService(t *testing.T, statuses *[]string, marks ...ports.Watermarker) *watermark.Service {
	t.Helper()

	cfg := &watermark.Config{OnStatus: func(s string) { *statuses = append(*statuses, s) }}
	cfg.Watermarkers = append(cfg.Watermarkers, imaging.NewWatermarker(), failingWatermarker{})
	cfg.Watermarkers = append(cfg.Watermarkers, marks...)

	s, err := watermark.New(cfg)
	require.NoError(t, err)
	return s
}

func TestApplyImage(t *testing.T) {
	var statuses []string
	s := newService(t, &statuses)

	src := whitePNG(t)
	opts := domain.DefaultWatermarkOptions()
	opts.Position = domain.PositionCenter

	result, err := s.Apply(context.Background(), "badge.png", "image/png", src, opts)
	require.NoError(t, err)

	assert.True(t, result.Supported)
	assert.Equal(t, "watermarked_badge.png", result.Name)
	assert.Equal(t, "image/png", result.Mime)
	assert.NotEqual(t, src, result.Data)
	assert.Equal(t, []string{watermark.StatusStarting, watermark.StatusDone}, statuses)

	_, err = png.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)
}

func TestApplyUnsupported(t *testing.T) {
	var statuses []string
	s := newService(t, &statuses)

	result, err := s.Apply(context.Background(), "sheet.xlsx", "application/vnd.ms-excel", []byte("x"), nil)
	require.NoError(t, err)

	assert.False(t, result.Supported)
	assert.Equal(t, watermark.StatusUnsupported, result.Status)
	assert.Empty(t, result.Data)
	assert.Equal(t, "Watermarking not supported for this file type", statuses[len(statuses)-1])
	assert.False(t, s.Supports("application/zip"))
	assert.True(t, s.Supports("application/pdf"))
}

func TestApplyFailureStatus(t *testing.T) {
	var statuses []string
	s := newService(t, &statuses)

	_, err := s.Apply(context.Background(), "doc.pdf", "application/pdf", []byte("%PDF"), nil)
	require.Error(t, err)
	assert.Equal(t, "Watermarking failed: read pdf: unexpected EOF", statuses[len(statuses)-1])
}

func TestApplyFillsDefaults(t *testing.T) {
	var statuses []string
	rec := &recorder{}
	s := newService(t, &statuses, rec)

	result, err := s.Apply(context.Background(), "", "text/plain", []byte("body"), &domain.WatermarkOptions{Opacity: 0.3})
	require.NoError(t, err)

	assert.Equal(t, "watermarked_file", result.Name)
	assert.Equal(t, []byte("CONFIDENTIAL:body"), result.Data)
	require.NotNil(t, rec.opts)
	assert.Equal(t, 0.3, rec.opts.Opacity)
	assert.Equal(t, 24.0, rec.opts.Size)
	assert.Equal(t, "#000000", rec.opts.Color)
	assert.Equal(t, domain.PositionDiagonal, rec.opts.Position)
}

func TestApplyRejectsInvalidOptions(t *testing.T) {
	var statuses []string
	s := newService(t, &statuses)

	tests := []struct {
		name  string
		opts  domain.WatermarkOptions
		field string
	}{
		{"opacity above one", domain.WatermarkOptions{Opacity: 1.5}, "opacity"},
		{"negative opacity", domain.WatermarkOptions{Opacity: -0.1}, "opacity"},
		{"negative size", domain.WatermarkOptions{Size: -3}, "size"},
		{"bad color", domain.WatermarkOptions{Color: "blue"}, "color"},
		{"bad position", domain.WatermarkOptions{Position: "top-left"}, "position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			_, err := s.Apply(context.Background(), "a.png", "image/png", whitePNG(t), &opts)
			require.Error(t, err)

			verr := cerrors.GetValidationError(err)
			require.NotNil(t, verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.Empty(t, statuses)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, watermark.Validate(domain.DefaultWatermarkOptions()))
	assert.Error(t, watermark.Validate(nil))

	opts := domain.DefaultWatermarkOptions()
	opts.Text = ""
	assert.True(t, cerrors.IsValidationError(watermark.Validate(opts)))

	opts = domain.DefaultWatermarkOptions()
	opts.Color = "#abc"
	assert.NoError(t, watermark.Validate(opts))
}

func TestNewRequiresWatermarkers(t *testing.T) {
	_, err := watermark.New(&watermark.Config{})
	assert.True(t, cerrors.IsCategory(err, cerrors.ErrorCapabilityUnavailable))
}
