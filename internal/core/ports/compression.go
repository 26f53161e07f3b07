package ports

// Defines the interface for the lossless compression capability behind the
// container codec. This allows us to swap compression algorithms without
// changing core logic.
type CompressionPort interface {
	// Compress reduces data size at the given effort level.
	// Returns compressed data and any error that occurred. Implementations must
	// never fall back to returning the input unchanged.
	Compress(data []byte, level int) ([]byte, error)

	// Decompress restores original data, reading at most limit bytes of output.
	// A negative limit means no limit.
	Decompress(data []byte, limit int64) ([]byte, error)

	// Name returns the algorithm name.
	Name() string
}
