package async

import (
	"context"
	"sync"
	"time"
)

// Future represents the result of a computation running in the background.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await blocks until the computation completes and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout waits for the computation to complete with a timeout.
// If the timeout elapses first it returns ErrTimeout; the underlying
// computation keeps running and its eventual result is discarded.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the computation has finished, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn in a new goroutine and returns a Future for its result.
func Async[U any](ctx context.Context, fn func(context.Context) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit avoids doing any work when the context is pre-canceled.
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		res, err := fn(ctx)
		f.once.Do(func() {
			f.result = res
			f.err = err
		})
	}()

	return f
}

// RunWithTimeout executes a blocking operation with a wall-clock bound.
// Cancellation is advisory only: on timeout the operation keeps running to
// completion in its own goroutine and the caller must treat the outcome as
// unknown rather than reverted.
func RunWithTimeout[U any](ctx context.Context, timeout time.Duration, fn func(context.Context) (U, error)) (U, error) {
	return Async(ctx, fn).AwaitWithTimeout(timeout)
}
