package system

import (
	"context"
)

// RunWithContext runs operation on its own goroutine and waits for it or for
// ctx, whichever comes first.
//
// The operation receives an independent context that is cancelled when ctx
// is. After cancellation RunWithContext still waits for the operation to
// return, so no work is left running behind the caller's back.
//
// Returns:
//   - ctx.Err() if ctx is already done before the operation starts.
//   - the operation's error otherwise.
func RunWithContext(ctx context.Context, operation func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	opCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Buffered so the goroutine can exit even if nobody reads.
	done := make(chan error, 1)

	go func() {
		done <- operation(opCtx)
		close(done)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		cancel()
		return <-done
	}
}
