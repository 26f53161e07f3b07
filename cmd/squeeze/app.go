package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/iamNilotpal/squeeze/config"
	"github.com/iamNilotpal/squeeze/internal/adapters/imaging"
	"github.com/iamNilotpal/squeeze/internal/adapters/metrics"
	"github.com/iamNilotpal/squeeze/internal/adapters/mime"
	"github.com/iamNilotpal/squeeze/internal/adapters/pdf"
	"github.com/iamNilotpal/squeeze/internal/core/ports"
	"github.com/iamNilotpal/squeeze/internal/core/services/codec"
	"github.com/iamNilotpal/squeeze/internal/core/services/pipeline"
	"github.com/iamNilotpal/squeeze/internal/core/services/watermark"
	"github.com/iamNilotpal/squeeze/internal/core/services/worker"
	"github.com/iamNilotpal/squeeze/pkg/fs"
	"github.com/iamNilotpal/squeeze/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

var errNotContainer = errors.New("not a squeeze container")

// app holds everything a command needs, built once per invocation.
type app struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	fs       *fs.LocalFileSystem
	detector *mime.Detector
	codec    *codec.Codec
	registry *prometheus.Registry
	metrics  ports.MetricsPort
	closed   bool
}

func newApp(cfg *config.Config) (*app, error) {
	log, err := logger.NewWithOptions("squeeze", &logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return nil, err
	}

	c, err := codec.NewDefault()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		fs:       fs.NewLocalFileSystem(),
		detector: mime.NewDetector(),
		codec:    c,
		metrics:  metrics.Noop{},
	}

	if cfg.EnableMetrics {
		a.registry = prometheus.NewRegistry()
		a.metrics = metrics.NewPrometheus(a.registry)
	}

	return a, nil
}

func (a *app) newWorker() (*worker.Worker, error) {
	return worker.New(&worker.Config{
		Codec:      a.codec,
		Transcoder: imaging.NewTranscoder(),
		Metrics:    a.metrics,
		Logger:     a.log,
	})
}

func (a *app) pipeline(onStatus pipeline.StatusFunc) (*pipeline.Pipeline, error) {
	return pipeline.New(&pipeline.Config{
		NewWorker: a.newWorker,
		Codec:     a.codec,
		OnStatus:  onStatus,
		Logger:    a.log,
	})
}

func (a *app) watermarker(onStatus func(string)) (*watermark.Service, error) {
	pdfWatermarker, err := pdf.New(a.cfg.PDF.LicenseKey)
	if err != nil {
		return nil, err
	}

	return watermark.New(&watermark.Config{
		Watermarkers: []ports.Watermarker{imaging.NewWatermarker(), pdfWatermarker},
		OnStatus:     onStatus,
		Metrics:      a.metrics,
		Logger:       a.log,
	})
}

// readInput loads path within the configured size limit.
func (a *app) readInput(path string) ([]byte, error) {
	data, err := a.fs.ReadFile(path, a.cfg.MaxInputSize)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// readContainer loads path and checks it is a container before any decoding.
func (a *app) readContainer(path string) ([]byte, error) {
	data, err := a.readInput(path)
	if err != nil {
		return nil, err
	}
	if !codec.IsContainer(data) {
		return nil, fmt.Errorf("%s: %w", path, errNotContainer)
	}
	return data, nil
}

// detect returns declared when set, otherwise a sniffed MIME type.
func (a *app) detect(declared, name string, data []byte) string {
	if declared != "" {
		return declared
	}
	detected := a.detector.DetectNamed(name, data)
	a.log.Debugw("detected content type", "name", name, "mime", detected)
	return detected
}

func (a *app) close() {
	if a.closed {
		return
	}
	a.closed = true

	if a.registry != nil {
		a.printMetrics()
	}
	_ = a.log.Sync()
}

func (a *app) printMetrics() {
	families, err := a.registry.Gather()
	if err != nil {
		a.log.Warnw("gather metrics", "error", err)
		return
	}

	rows := [][]string{{"Metric", "Labels", "Value"}}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			sort.Strings(labels)
			rows = append(rows, []string{
				family.GetName(),
				strings.Join(labels, ","),
				fmt.Sprintf("%g", m.GetCounter().GetValue()),
			})
		}
	}

	if len(rows) == 1 {
		return
	}
	pterm.DefaultSection.Println("Metrics")
	if err := pterm.DefaultTable.WithHasHeader(true).WithData(rows).Render(); err != nil {
		a.log.Warnw("render metrics", "error", err)
	}
}
