// Package pipeline drives a compression worker on behalf of a user-facing
// caller: it posts the file, relays progress, and turns the worker's terminal
// message into a downloadable outcome.
package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/iamNilotpal/squeeze/internal/core/domain"
	"github.com/iamNilotpal/squeeze/internal/core/services/codec"
	"github.com/iamNilotpal/squeeze/internal/core/services/worker"
	cerrors "github.com/iamNilotpal/squeeze/pkg/errors"
	"github.com/iamNilotpal/squeeze/pkg/logger"
	"github.com/iamNilotpal/squeeze/pkg/system"
	"go.uber.org/zap"
)

// Status texts reported around the worker's own progress texts.
const (
	StatusStarting = "Starting compression..."
	StatusDone     = "Done"
	StatusError    = "Error: "
)

var (
	// ErrCompressionFailed matches every WorkerError.
	ErrCompressionFailed = errors.New("compression failed")

	// ErrWorkerGone indicates the worker stopped without a terminal message.
	ErrWorkerGone = errors.New("worker stopped unexpectedly")
)

// WorkerError carries the text of a worker error response.
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}

func (e *WorkerError) Unwrap() error {
	return ErrCompressionFailed
}

// WorkerFactory builds a fresh worker. It is called lazily and again after
// every cancellation.
type WorkerFactory func() (*worker.Worker, error)

// StatusFunc receives every status line in order.
type StatusFunc func(status string)

// Config wires a pipeline.
type Config struct {
	// NewWorker builds workers. Required.
	NewWorker WorkerFactory

	// Codec decodes archive results back into the original file. Required.
	Codec *codec.Codec

	// OnStatus is optional.
	OnStatus StatusFunc

	// Logger defaults to a no-op.
	Logger *zap.SugaredLogger
}

// File is a user-selected input.
type File struct {
	Name string
	Mime string
	Data []byte
}

// Pipeline runs one compression at a time against a single worker.
type Pipeline struct {
	mu        sync.Mutex
	newWorker WorkerFactory
	codec     *codec.Codec
	onStatus  StatusFunc
	log       *zap.SugaredLogger
	worker    *worker.Worker
}

// New validates cfg and builds a pipeline. The worker is created on first use.
func New(cfg *Config) (*Pipeline, error) {
	if cfg == nil || cfg.NewWorker == nil || cfg.Codec == nil {
		return nil, cerrors.Newf(
			cerrors.ErrorCapabilityUnavailable, "pipeline.new", "worker factory and codec are required",
		)
	}

	p := &Pipeline{
		newWorker: cfg.NewWorker,
		codec:     cfg.Codec,
		onStatus:  cfg.OnStatus,
		log:       cfg.Logger,
	}
	if p.onStatus == nil {
		p.onStatus = func(string) {}
	}
	if p.log == nil {
		p.log = logger.Nop()
	}
	return p, nil
}

// Compress sends file to the worker and waits for its terminal message.
//
// file.Data is handed to the worker and must not be modified afterwards.
// Cancelling ctx terminates the worker; the next call builds a new one.
// Errors reported by the worker are returned as *WorkerError.
func (p *Pipeline) Compress(ctx context.Context, file File, preset domain.Preset) (*Outcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.onStatus(StatusStarting)

	w, err := p.current()
	if err != nil {
		return nil, p.fail(err)
	}

	req := &domain.Request{
		ID:     uuid.NewString(),
		Type:   domain.MessageCompress,
		Buffer: file.Data,
		Name:   file.Name,
		Mime:   file.Mime,
		Preset: preset,
	}
	log := p.log.With("request", req.ID, "name", file.Name)

	outcome := &Outcome{OriginalName: file.Name, OriginalMime: file.Mime, OriginalSize: len(file.Data)}
	var result *domain.Response

	err = system.RunWithContext(ctx, func(opCtx context.Context) error {
		if err := w.Post(req); err != nil {
			return err
		}
		for {
			select {
			case <-opCtx.Done():
				return opCtx.Err()
			case msg, ok := <-w.Messages():
				if !ok {
					return ErrWorkerGone
				}
				if msg.RequestID != req.ID {
					continue
				}
				switch msg.Type {
				case domain.MessageProgress:
					p.onStatus(msg.Text)
				case domain.MessageError:
					return &WorkerError{Message: msg.Error}
				case domain.MessageResult:
					result = msg
					return nil
				}
			}
		}
	})

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		if !errors.Is(err, ErrCompressionFailed) {
			// Cancelled or broken: the worker may still hold the request.
			log.Warnw("abandoning worker", "error", err)
			p.abandon()
		}
		return nil, p.fail(err)
	}

	outcome.Blob = result.Blob
	outcome.Mime = result.Mime
	outcome.IsArchive = result.IsArchive

	if result.IsArchive {
		doc, err := p.codec.Decode(result.Blob)
		if err != nil {
			// The container is still a valid download on its own.
			log.Warnw("archive could not be restored", "error", err)
			outcome.RestoreErr = err
		} else {
			if doc.Mime == "" {
				doc.Mime = domain.ArchiveMime
			}
			outcome.Restored = doc
		}
	}

	log.Infow("compression finished", "originalSize", outcome.OriginalSize, "compressedSize", len(outcome.Blob))
	p.onStatus(StatusDone)
	return outcome, nil
}

// Close terminates the worker, if any.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
}

func (p *Pipeline) current() (*worker.Worker, error) {
	if p.worker != nil {
		return p.worker, nil
	}

	w, err := p.newWorker()
	if err != nil {
		return nil, err
	}
	p.worker = w
	return w, nil
}

// abandon detaches the worker and cancels it without waiting for the
// in-flight request, so the caller's deadline bounds the wait.
func (p *Pipeline) abandon() {
	if p.worker != nil {
		p.worker.Cancel()
		p.worker = nil
	}
}

func (p *Pipeline) reset() {
	if p.worker != nil {
		p.worker.Terminate()
		p.worker = nil
	}
}

func (p *Pipeline) fail(err error) error {
	p.onStatus(StatusError + err.Error())
	return err
}
