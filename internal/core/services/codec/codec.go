// Package codec implements the container format that wraps a document's raw
// bytes and metadata into one flat, self-describing buffer and back.
package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/iamNilotpal/squeeze/internal/adapters/compression"
	"github.com/iamNilotpal/squeeze/internal/core/domain"
	"github.com/iamNilotpal/squeeze/internal/core/ports"
	"github.com/iamNilotpal/squeeze/internal/serialize"
	"github.com/iamNilotpal/squeeze/pkg/errors"
	"github.com/iamNilotpal/squeeze/pkg/pool"
)

// Codec encodes and decodes containers. Encode and Decode are pure functions
// of their inputs and safe for concurrent use.
type Codec struct {
	compressor ports.CompressionPort // Payload compression capability.
	buffers    *pool.BufferPool      // Scratch space for container assembly.
}

// New creates a Codec on top of a compression capability.
// Returns a CapabilityUnavailable error when compressor is nil.
func New(compressor ports.CompressionPort) (*Codec, error) {
	if compressor == nil {
		return nil, errors.Newf(
			errors.ErrorCapabilityUnavailable, "codec.new", "compression capability is not configured",
		)
	}

	return &Codec{
		compressor: compressor,
		buffers:    pool.NewBufferPool(compression.DefaultBufferSize),
	}, nil
}

// NewDefault creates a Codec backed by gzip with default options.
func NewDefault() (*Codec, error) {
	gz, err := compression.NewGzipCompression(nil)
	if err != nil {
		return nil, errors.New(errors.ErrorCapabilityUnavailable, "codec.new", err)
	}
	return New(gz)
}

// Encode compresses data at level and wraps it with its metadata:
//
//	[uint32 LE header length][JSON header][compressed payload]
//
// Fails with an Encode error if the level is out of range or compression fails.
// Raw bytes are never stored uncompressed.
func (c *Codec) Encode(data []byte, name, mime string, level int) ([]byte, error) {
	if err := compression.ValidateLevel(level); err != nil {
		return nil, errors.New(errors.ErrorEncode, "codec.encode", err)
	}

	payload, err := c.compressor.Compress(data, level)
	if err != nil {
		return nil, errors.New(errors.ErrorEncode, "codec.encode", err)
	}

	header, err := serialize.MarshalJSON(&domain.ContainerHeader{
		Type:             domain.DocumentType,
		OriginalName:     name,
		OriginalMime:     mime,
		CompressionLevel: level,
		OriginalSize:     int64(len(data)),
	})
	if err != nil {
		return nil, errors.New(errors.ErrorEncode, "codec.encode", fmt.Errorf("failed to marshal header: %w", err))
	}

	if uint64(len(header)) > math.MaxUint32 {
		return nil, errors.Newf(errors.ErrorEncode, "codec.encode", "header too large: %d bytes", len(header))
	}

	buf := c.buffers.Get()
	defer c.buffers.Put(buf)

	buf.Grow(domain.HeaderLengthSize + len(header) + len(payload))
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(header))); err != nil {
		return nil, errors.New(errors.ErrorEncode, "codec.encode", err)
	}
	buf.Write(header)
	buf.Write(payload)

	return pool.Detach(buf), nil
}

// Decode parses a container and returns the original bytes with their name
// and MIME type. The compression level stored in the header is not returned;
// use Inspect to read it.
//
// Returns an error if:
//   - The framing or header is broken (MalformedContainer)
//   - The payload is not valid gzip data (DecompressionError)
//   - The payload length disagrees with the header (IntegrityError)
func (c *Codec) Decode(container []byte) (*domain.Document, error) {
	header, payload, err := split(container)
	if err != nil {
		return nil, err
	}

	// One byte past the declared size is enough to detect an oversized payload
	// without inflating all of it.
	limit := header.OriginalSize
	if limit < math.MaxInt64 {
		limit++
	}

	data, err := c.compressor.Decompress(payload, limit)
	if err != nil {
		return nil, errors.New(errors.ErrorDecompression, "codec.decode", err)
	}

	if int64(len(data)) != header.OriginalSize {
		return nil, errors.Newf(
			errors.ErrorIntegrity, "codec.decode",
			"decompressed %d bytes, header declares %d", len(data), header.OriginalSize,
		)
	}

	return &domain.Document{Data: data, Name: header.OriginalName, Mime: header.OriginalMime}, nil
}

// Inspect parses and validates the container header without touching the payload.
func (c *Codec) Inspect(container []byte) (*domain.ContainerHeader, error) {
	header, _, err := split(container)
	return header, err
}

// IsContainer reports whether data carries a well formed container header.
// The payload is not checked.
func IsContainer(data []byte) bool {
	_, _, err := split(data)
	return err == nil
}
