package streamx

import (
	"context"
	"sync"
)

// First subscribes to s and blocks until its first event. It returns the
// first value, the stream's error, ErrNoValue if s completes empty, or
// ctx.Err(). Streams that emit during Subscribe return without blocking.
func First[T any](ctx context.Context, s Stream[T]) (T, error) {
	ch := make(chan Notification[T], 1)
	var once sync.Once
	send := func(n Notification[T]) { once.Do(func() { ch <- n }) }

	sub := s.Subscribe(Funcs[T]{
		Next:     func(v T) { send(NextOf(v)) },
		Error:    func(err error) { send(ErrorOf[T](err)) },
		Complete: func() { send(CompleteOf[T]()) },
	})
	defer sub.Unsubscribe()

	var zero T
	select {
	case n := <-ch:
		switch n.Kind {
		case KindNext:
			return n.Value, nil
		case KindError:
			return zero, n.Err
		default:
			return zero, streamxErrors.New(ErrNoValue)
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Collect subscribes to s and blocks until it terminates, returning every
// value received. On error the values received so far are returned with it.
func Collect[T any](ctx context.Context, s Stream[T]) ([]T, error) {
	var (
		mu     sync.Mutex
		values []T
	)
	done := make(chan error, 1)

	sub := s.Subscribe(Funcs[T]{
		Next: func(v T) {
			mu.Lock()
			values = append(values, v)
			mu.Unlock()
		},
		Error:    func(err error) { done <- err },
		Complete: func() { done <- nil },
	})
	defer sub.Unsubscribe()

	select {
	case err := <-done:
		mu.Lock()
		defer mu.Unlock()
		return values, err
	case <-ctx.Done():
		mu.Lock()
		defer mu.Unlock()
		return values, ctx.Err()
	}
}
