package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies the failures that can occur while building or
// reading a compressed container. Callers use it to decide how a failure is
// reported (terminal worker message, degraded download, status string).
type ErrorCategory int

const (
	// ErrorCapabilityUnavailable indicates the compression or decompression
	// algorithm could not be initialized. Fatal for the current request.
	ErrorCapabilityUnavailable ErrorCategory = iota + 1

	// ErrorMalformedContainer indicates the container framing is broken:
	// the buffer is too short, the declared header length runs past the end
	// of the buffer, or the header text does not carry the required fields.
	ErrorMalformedContainer

	// ErrorDecompression indicates the payload is not valid compressed data.
	ErrorDecompression

	// ErrorIntegrity indicates the payload decompressed cleanly but its length
	// disagrees with the size declared in the header.
	ErrorIntegrity

	// ErrorEncode indicates the container could not be produced.
	ErrorEncode

	// ErrorUnsupportedContentType indicates a transform was requested for a
	// content type it cannot handle. Surfaced as a status string.
	ErrorUnsupportedContentType
)

// String returns the string representation of the error category.
// This is useful for logging, metrics, and error reporting.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorCapabilityUnavailable:
		return "capability_unavailable"
	case ErrorMalformedContainer:
		return "malformed_container"
	case ErrorDecompression:
		return "decompression"
	case ErrorIntegrity:
		return "integrity"
	case ErrorEncode:
		return "encode"
	case ErrorUnsupportedContentType:
		return "unsupported_content_type"
	default:
		return "unknown"
	}
}

type ContainerError struct {
	Err       error
	Operation string
	Category  ErrorCategory
}

// New wraps err into a ContainerError of the given category.
func New(category ErrorCategory, operation string, err error) *ContainerError {
	return &ContainerError{Err: err, Operation: operation, Category: category}
}

// Newf is New with a formatted cause.
func Newf(category ErrorCategory, operation, format string, args ...any) *ContainerError {
	return New(category, operation, fmt.Errorf(format, args...))
}

func (e *ContainerError) Error() string {
	return fmt.Sprintf("[%v] %s: %v", e.Category, e.Operation, e.Err)
}

func (e *ContainerError) Unwrap() error {
	return e.Err
}

// IsRetryAble reports whether resubmitting the same request can succeed.
// Nothing retries automatically; this only informs the caller.
func (e *ContainerError) IsRetryAble() bool {
	switch e.Category {
	case ErrorCapabilityUnavailable:
		// The capability may come up on a fresh worker.
		return true
	default:
		// Every other category is a property of the bytes themselves.
		return false
	}
}

// CategoryOf extracts the category of the first ContainerError in err's chain.
func CategoryOf(err error) (ErrorCategory, bool) {
	var ce *ContainerError
	if errors.As(err, &ce) {
		return ce.Category, true
	}
	return 0, false
}

// IsCategory reports whether err carries a ContainerError of category c.
func IsCategory(err error, c ErrorCategory) bool {
	got, ok := CategoryOf(err)
	return ok && got == c
}

// GetContainerError extracts the first ContainerError in err's chain, or nil.
func GetContainerError(err error) *ContainerError {
	var ce *ContainerError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}
