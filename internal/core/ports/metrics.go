package ports

// MetricsPort records worker activity.
type MetricsPort interface {
	// RequestStarted counts a request entering the given path ("image" or "document").
	RequestStarted(path string)

	// RequestFailed counts a request that ended with an error message.
	RequestFailed(path, reason string)

	// BytesProcessed records input and output sizes of a finished request.
	BytesProcessed(path string, in, out int)
}
