package compression

import (
	"fmt"

	"github.com/iamNilotpal/squeeze/internal/core/domain"
)

// Compression level constants define the trade-off between compression ratio and speed.
// Higher levels provide better compression at the cost of increased CPU usage and time.
const (
	FastestLevel = 1 // Optimized for speed with minimal compression
	DefaultLevel = 6 // Balanced between speed and compression ratio
	BestLevel    = 9 // Maximum compression ratio, higher CPU usage

	DefaultBufferSize = 64 * 1024 // 64KB
)

// Returns CompressionOptions struct initialized with
// recommended default values that provide a good balance between compression ratio
// and performance for most use cases.
func DefaultOptions() *domain.CompressionOptions {
	return &domain.CompressionOptions{
		Level:      DefaultLevel,
		BufferSize: DefaultBufferSize,
	}
}

// Checks if the compression options are valid and returns an error if any option
// is outside acceptable bounds.
func Validate(input *domain.CompressionOptions) error {
	if err := ValidateLevel(input.Level); err != nil {
		return err
	}

	if input.BufferSize < 0 {
		return fmt.Errorf("buffer size must not be negative, got %d", input.BufferSize)
	}

	return nil
}

// ValidateLevel checks a gzip effort level.
func ValidateLevel(level int) error {
	if level < FastestLevel || level > BestLevel {
		return fmt.Errorf("compression level must be between %d and %d, got %d", FastestLevel, BestLevel, level)
	}
	return nil
}
