package domain

// CompressionOptions configures the document compression capability.
type CompressionOptions struct {
	// Level is the gzip effort used when a caller does not pass one.
	// Supported range is 1 (fastest) to 9 (smallest output).
	//
	// Default: 6
	Level int

	// BufferSize is the initial capacity of pooled scratch buffers used while
	// compressing and assembling containers. Buffers that grow past twice this
	// size are dropped instead of pooled.
	//
	// Default: 64KB
	BufferSize int
}
