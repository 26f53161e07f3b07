// Package compression provides the gzip capability used by the container codec.
// Output is a standard RFC 1952 stream, so payloads stay readable by any gunzip.
package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/iamNilotpal/squeeze/internal/core/domain"
	"github.com/iamNilotpal/squeeze/pkg/pool"
	"github.com/klauspost/compress/gzip"
)

// GzipCompression implements CompressionPort using the gzip format.
// It is safe for concurrent use; every call builds its own writer or reader
// and borrows scratch space from a buffer pool.
type GzipCompression struct {
	buffers *pool.BufferPool
}

// NewGzipCompression creates a gzip compression instance.
// A nil opts uses DefaultOptions.
//
// Returns an error if the options are out of range.
func NewGzipCompression(opts *domain.CompressionOptions) (*GzipCompression, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if err := Validate(opts); err != nil {
		return nil, err
	}

	size := opts.BufferSize
	if size == 0 {
		size = DefaultBufferSize
	}

	return &GzipCompression{buffers: pool.NewBufferPool(size)}, nil
}

// Compress gzips data at the given level. Empty input still produces a
// complete gzip stream.
func (g *GzipCompression) Compress(data []byte, level int) ([]byte, error) {
	if err := ValidateLevel(level); err != nil {
		return nil, err
	}

	buf := g.buffers.Get()
	defer g.buffers.Put(buf)

	writer, err := gzip.NewWriterLevel(buf, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip writer: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close gzip writer: %w", err)
	}

	return pool.Detach(buf), nil
}

// Decompress gunzips data. At most limit bytes of output are read; the
// gzip trailer checksum is only verified when the stream is read to its end,
// so callers that pass a limit must compare the output length themselves.
//
// Returns an error if:
// - The input is not a gzip stream
// - The stream is truncated or fails its checksum
func (g *GzipCompression) Decompress(data []byte, limit int64) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer reader.Close()

	var src io.Reader = reader
	if limit >= 0 {
		src = io.LimitReader(reader, limit)
	}

	buf := g.buffers.Get()
	defer g.buffers.Put(buf)

	if _, err := buf.ReadFrom(src); err != nil {
		return nil, fmt.Errorf("decompression failed: %w", err)
	}

	return pool.Detach(buf), nil
}

// Name returns the algorithm name.
func (g *GzipCompression) Name() string {
	return "gzip"
}
