package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/iamNilotpal/squeeze/internal/core/domain"
	"github.com/iamNilotpal/squeeze/internal/serialize"
	"github.com/iamNilotpal/squeeze/pkg/errors"
)

// wireHeader mirrors domain.ContainerHeader with pointer fields so missing
// keys can be told apart from zero values.
type wireHeader struct {
	Type             *string `json:"type"`
	OriginalName     *string `json:"originalName"`
	OriginalMime     *string `json:"originalMime"`
	CompressionLevel *int    `json:"compressionLevel"`
	OriginalSize     *int64  `json:"originalSize"`
}

// split validates the framing and returns the parsed header and the payload slice.
func split(container []byte) (*domain.ContainerHeader, []byte, error) {
	if len(container) < domain.HeaderLengthSize {
		return nil, nil, errors.Newf(
			errors.ErrorMalformedContainer, "codec.decode",
			"container is %d bytes, need at least %d", len(container), domain.HeaderLengthSize,
		)
	}

	length := uint64(binary.LittleEndian.Uint32(container[:domain.HeaderLengthSize]))
	end := uint64(domain.HeaderLengthSize) + length
	if end > uint64(len(container)) {
		return nil, nil, errors.Newf(
			errors.ErrorMalformedContainer, "codec.decode",
			"header length %d exceeds container size %d", length, len(container),
		)
	}

	header, err := parseHeader(container[domain.HeaderLengthSize:end])
	if err != nil {
		return nil, nil, errors.New(errors.ErrorMalformedContainer, "codec.decode", err)
	}

	return header, container[end:], nil
}

func parseHeader(raw []byte) (*domain.ContainerHeader, error) {
	var wire wireHeader
	if err := serialize.UnMarshalJSON(raw, &wire); err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}

	switch {
	case wire.OriginalName == nil:
		return nil, fmt.Errorf("header is missing originalName")
	case wire.OriginalMime == nil:
		return nil, fmt.Errorf("header is missing originalMime")
	case wire.CompressionLevel == nil:
		return nil, fmt.Errorf("header is missing compressionLevel")
	case wire.OriginalSize == nil:
		return nil, fmt.Errorf("header is missing originalSize")
	case *wire.OriginalSize < 0:
		return nil, fmt.Errorf("header originalSize must not be negative, got %d", *wire.OriginalSize)
	case wire.Type != nil && *wire.Type != domain.DocumentType:
		return nil, fmt.Errorf("unexpected header type %q", *wire.Type)
	}

	return &domain.ContainerHeader{
		Type:             domain.DocumentType,
		OriginalName:     *wire.OriginalName,
		OriginalMime:     *wire.OriginalMime,
		CompressionLevel: *wire.CompressionLevel,
		OriginalSize:     *wire.OriginalSize,
	}, nil
}
