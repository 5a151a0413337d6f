package resolve

import "context"

// Deferred is the pending result of an asynchronous computation. It
// completes exactly once.
type Deferred[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go runs fn on its own goroutine and returns a handle to its result.
func Go[T any](fn func() (T, error)) *Deferred[T] {
	d := &Deferred[T]{done: make(chan struct{})}

	go func() {
		defer close(d.done)
		d.value, d.err = fn()
	}()

	return d
}

// Done returns an already completed Deferred.
func Done[T any](v T) *Deferred[T] {
	d := &Deferred[T]{done: make(chan struct{}), value: v}
	close(d.done)
	return d
}

// Fail returns an already faulted Deferred.
func Fail[T any](err error) *Deferred[T] {
	d := &Deferred[T]{done: make(chan struct{}), err: err}
	close(d.done)
	return d
}

// Await blocks until the result is available or ctx is done.
func (d *Deferred[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.value, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
