// Package watermark stamps text onto images and PDFs by dispatching to the
// first watermarker that supports the file's content type.
package watermark

import (
	"context"

	"github.com/iamNilotpal/squeeze/internal/adapters/metrics"
	"github.com/iamNilotpal/squeeze/internal/core/domain"
	"github.com/iamNilotpal/squeeze/internal/core/ports"
	"github.com/iamNilotpal/squeeze/pkg/errors"
	"github.com/iamNilotpal/squeeze/pkg/logger"
	"go.uber.org/zap"
)

const metricsPath = "watermark"

// Config wires a Service.
type Config struct {
	// Watermarkers are tried in order. Required.
	Watermarkers []ports.Watermarker

	// OnStatus is optional.
	OnStatus func(status string)

	// Metrics defaults to a no-op.
	Metrics ports.MetricsPort

	// Logger defaults to a no-op.
	Logger *zap.SugaredLogger
}

// Result is the outcome of a watermark attempt. Supported is false when no
// watermarker handles the content type; Data is empty in that case.
type Result struct {
	Name      string
	Mime      string
	Data      []byte
	Status    string
	Supported bool
}

type Service struct {
	watermarkers []ports.Watermarker
	onStatus     func(string)
	metrics      ports.MetricsPort
	log          *zap.SugaredLogger
}

// New builds a Service.
func New(cfg *Config) (*Service, error) {
	if cfg == nil || len(cfg.Watermarkers) == 0 {
		return nil, errors.Newf(
			errors.ErrorCapabilityUnavailable, "watermark.new", "at least one watermarker is required",
		)
	}

	s := &Service{
		watermarkers: cfg.Watermarkers,
		onStatus:     cfg.OnStatus,
		metrics:      cfg.Metrics,
		log:          cfg.Logger,
	}
	if s.onStatus == nil {
		s.onStatus = func(string) {}
	}
	if s.metrics == nil {
		s.metrics = metrics.Noop{}
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s, nil
}

// Apply stamps data with opts. Zero option fields take the default stamp.
//
// An unsupported content type is not an error: the result carries
// StatusUnsupported and Supported is false. Invalid options return a
// ValidationError before any work is done.
func (s *Service) Apply(
	ctx context.Context, name, mime string, data []byte, opts *domain.WatermarkOptions,
) (*Result, error) {
	opts = prepareDefaults(opts)
	if err := Validate(opts); err != nil {
		return nil, err
	}

	log := s.log.With("name", name, "mime", mime, "position", opts.Position)
	s.onStatus(StatusStarting)
	s.metrics.RequestStarted(metricsPath)

	target := s.find(mime)
	if target == nil {
		log.Infow("content type not supported")
		s.metrics.RequestFailed(metricsPath, errors.ErrorUnsupportedContentType.String())
		s.onStatus(StatusUnsupported)
		return &Result{Status: StatusUnsupported}, nil
	}

	out, outMime, err := target.Watermark(ctx, data, mime, opts)
	if err != nil {
		log.Errorw("watermark failed", "error", err)
		s.metrics.RequestFailed(metricsPath, "transform")
		s.onStatus(StatusFailed + err.Error())
		return nil, err
	}

	if name == "" {
		name = domain.DefaultFileName
	}

	log.Infow("watermark added", "inputSize", len(data), "outputSize", len(out))
	s.metrics.BytesProcessed(metricsPath, len(data), len(out))
	s.onStatus(StatusDone)

	return &Result{
		Name:      DownloadPrefix + name,
		Mime:      outMime,
		Data:      out,
		Status:    StatusDone,
		Supported: true,
	}, nil
}

// Supports reports whether any configured watermarker handles mime.
func (s *Service) Supports(mime string) bool {
	return s.find(mime) != nil
}

func (s *Service) find(mime string) ports.Watermarker {
	for _, w := range s.watermarkers {
		if w.Supports(mime) {
			return w
		}
	}
	return nil
}
