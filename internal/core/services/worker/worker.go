// Package worker runs document and image compression on an isolated
// goroutine that talks to its caller only through messages.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/iamNilotpal/squeeze/internal/adapters/metrics"
	"github.com/iamNilotpal/squeeze/internal/core/domain"
	"github.com/iamNilotpal/squeeze/internal/core/ports"
	"github.com/iamNilotpal/squeeze/internal/core/services/codec"
	cerrors "github.com/iamNilotpal/squeeze/pkg/errors"
	"github.com/iamNilotpal/squeeze/pkg/logger"
	"go.uber.org/zap"
)

var (
	// ErrTerminated indicates the worker was torn down.
	ErrTerminated = errors.New("worker is terminated")
)

const (
	pathImage    = "image"
	pathDocument = "document"
)

// Progress texts emitted before the terminal message.
const (
	ProgressReceived    = "Worker received data"
	ProgressImage       = "Compressing image in worker"
	ProgressLoadLibrary = "Loading compression library"
)

// Config wires a worker to its capabilities.
type Config struct {
	// Codec builds document containers. Required.
	Codec *codec.Codec

	// Transcoder re-encodes images. When nil, image requests fail with a
	// CapabilityUnavailable error message.
	Transcoder ports.ImageTranscoder

	// Metrics records activity. Defaults to a no-op.
	Metrics ports.MetricsPort

	// Logger defaults to a no-op.
	Logger *zap.SugaredLogger

	// OutboxSize buffers responses so the worker is not blocked by a slow reader.
	//
	// Default: 16
	OutboxSize int
}

// Worker processes one compress request at a time. Requests are handled in
// arrival order; responses for a request never interleave with another's.
// The worker keeps no state between requests.
type Worker struct {
	codec      *codec.Codec
	transcoder ports.ImageTranscoder
	metrics    ports.MetricsPort
	log        *zap.SugaredLogger

	inbox  chan *domain.Request
	outbox chan *domain.Response

	terminated atomic.Bool
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
}

// New builds a worker and starts its goroutine.
//
// Returns a CapabilityUnavailable error if no codec is configured.
func New(cfg *Config) (*Worker, error) {
	if cfg == nil || cfg.Codec == nil {
		return nil, cerrors.Newf(
			cerrors.ErrorCapabilityUnavailable, "worker.new", "compression capability is not configured",
		)
	}

	cfg = prepareDefaults(cfg)
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		codec:      cfg.Codec,
		transcoder: cfg.Transcoder,
		metrics:    cfg.Metrics,
		log:        cfg.Logger,
		inbox:      make(chan *domain.Request),
		outbox:     make(chan *domain.Response, cfg.OutboxSize),
		ctx:        ctx,
		cancel:     cancel,
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

func prepareDefaults(cfg *Config) *Config {
	out := *cfg
	if out.Metrics == nil {
		out.Metrics = metrics.Noop{}
	}
	if out.Logger == nil {
		out.Logger = logger.Nop()
	}
	if out.OutboxSize <= 0 {
		out.OutboxSize = 16
	}
	return &out
}

// Post hands req to the worker, blocking until the worker accepts it.
// Ownership of req and req.Buffer passes to the worker.
func (w *Worker) Post(req *domain.Request) error {
	if w.terminated.Load() {
		return ErrTerminated
	}

	select {
	case w.inbox <- req:
		return nil
	case <-w.ctx.Done():
		return ErrTerminated
	}
}

// Messages returns the response stream. It is closed after Terminate.
func (w *Worker) Messages() <-chan *domain.Response {
	return w.outbox
}

// Cancel tears the worker down without waiting for an in-flight request to
// return. No further responses are delivered; Messages is closed once the
// abandoned request unwinds. Safe to call more than once.
func (w *Worker) Cancel() {
	w.terminated.Store(true)
	w.cancel()
}

// Terminate cancels the worker and waits for its goroutine to exit.
// Safe to call more than once.
func (w *Worker) Terminate() {
	w.Cancel()
	w.wg.Wait()
}

func (w *Worker) run() {
	defer w.wg.Done()
	defer close(w.outbox)

	for {
		select {
		case <-w.ctx.Done():
			return
		case req := <-w.inbox:
			w.handle(req)
		}
	}
}

func (w *Worker) handle(req *domain.Request) {
	if req == nil || req.Type != domain.MessageCompress {
		w.log.Warnw("ignoring message", "request", req)
		return
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	path := pathDocument
	if domain.IsImageMime(req.Mime) {
		path = pathImage
	}

	log := w.log.With("request", req.ID, "name", req.Name, "mime", req.Mime, "path", path)
	log.Debugw("request received", "size", len(req.Buffer), "preset", req.Preset)
	w.metrics.RequestStarted(path)

	in := len(req.Buffer)
	resp, err := w.process(req, path)
	// The worker keeps no reference to request bytes once it is done.
	req.Buffer = nil

	if err != nil {
		reason := "unknown"
		if category, ok := cerrors.CategoryOf(err); ok {
			reason = category.String()
		}
		log.Errorw("request failed", "error", err, "reason", reason)
		w.metrics.RequestFailed(path, reason)
		w.emit(&domain.Response{RequestID: req.ID, Type: domain.MessageError, Error: err.Error()})
		return
	}

	log.Infow("request completed", "inputSize", in, "outputSize", len(resp.Blob))
	w.metrics.BytesProcessed(path, in, len(resp.Blob))
	w.emit(resp)
}

// process runs one request. A panic inside a capability is converted to an error.
func (w *Worker) process(req *domain.Request, path string) (resp *domain.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fmt.Errorf("worker panic: %v", r)
		}
	}()

	if !w.progress(req, ProgressReceived) {
		return nil, ErrTerminated
	}

	preset, err := domain.ParsePreset(string(req.Preset))
	if err != nil {
		return nil, err
	}

	if path == pathImage {
		return w.compressImage(req, preset)
	}
	return w.compressDocument(req, preset)
}

func (w *Worker) compressImage(req *domain.Request, preset domain.Preset) (*domain.Response, error) {
	if !w.progress(req, ProgressImage) {
		return nil, ErrTerminated
	}

	if w.transcoder == nil {
		return nil, cerrors.Newf(
			cerrors.ErrorCapabilityUnavailable, "worker.image", "image transcoder is not configured",
		)
	}

	blob, mime, err := w.transcoder.Transcode(w.ctx, req.Buffer, req.Mime, preset.Quality())
	if err != nil {
		return nil, err
	}

	return &domain.Response{RequestID: req.ID, Type: domain.MessageResult, Blob: blob, Mime: mime}, nil
}

func (w *Worker) compressDocument(req *domain.Request, preset domain.Preset) (*domain.Response, error) {
	if !w.progress(req, ProgressLoadLibrary) {
		return nil, ErrTerminated
	}

	name := req.Name
	if name == "" {
		name = domain.DefaultFileName
	}

	container, err := w.codec.Encode(req.Buffer, name, req.Mime, preset.Level())
	if err != nil {
		return nil, err
	}

	return &domain.Response{
		RequestID:    req.ID,
		Type:         domain.MessageResult,
		Blob:         container,
		Mime:         domain.ArchiveMime,
		OriginalMime: req.Mime,
		OriginalName: name,
		IsArchive:    true,
	}, nil
}

func (w *Worker) progress(req *domain.Request, text string) bool {
	return w.emit(&domain.Response{RequestID: req.ID, Type: domain.MessageProgress, Text: text})
}

// emit delivers a response unless the worker is torn down first.
func (w *Worker) emit(resp *domain.Response) bool {
	if w.ctx.Err() != nil {
		return false
	}

	select {
	case w.outbox <- resp:
		return true
	case <-w.ctx.Done():
		return false
	}
}
