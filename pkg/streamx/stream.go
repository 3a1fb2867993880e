package streamx

import (
	"context"
	"sync/atomic"

	"github.com/Abraxas-365/reactx/pkg/asyncx"
)

// Observer receives the events of a Stream: any number of values followed
// by at most one terminal event (an error or a completion).
type Observer[T any] interface {
	OnNext(value T)
	OnError(err error)
	OnComplete()
}

// Funcs adapts optional callbacks to an Observer. Nil callbacks are ignored.
type Funcs[T any] struct {
	Next     func(T)
	Error    func(error)
	Complete func()
}

func (f Funcs[T]) OnNext(v T) {
	if f.Next != nil {
		f.Next(v)
	}
}

func (f Funcs[T]) OnError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}

func (f Funcs[T]) OnComplete() {
	if f.Complete != nil {
		f.Complete()
	}
}

// Subscription is returned by Subscribe; Unsubscribe stops delivery to the
// observer. It is safe to call more than once.
type Subscription interface {
	Unsubscribe()
}

// SubscriptionFunc adapts a function to Subscription.
type SubscriptionFunc func()

func (f SubscriptionFunc) Unsubscribe() { f() }

func noopSubscription() Subscription { return SubscriptionFunc(func() {}) }

// Stream is a push-based sequence of values. Subscribing attaches an
// Observer; whether subscribing starts new work (cold) or joins work that is
// already running (hot) depends on the stream.
type Stream[T any] interface {
	Subscribe(o Observer[T]) Subscription
}

// StreamFunc adapts a subscribe function to Stream.
type StreamFunc[T any] func(o Observer[T]) Subscription

func (f StreamFunc[T]) Subscribe(o Observer[T]) Subscription { return f(o) }

// ─── Guard ───────────────────────────────────────────────────────────────────

// guard enforces the observer contract for hand-written sources: nothing is
// delivered after a terminal event or after the subscription is cancelled.
type guard[T any] struct {
	downstream Observer[T]
	stopped    atomic.Bool
}

func (g *guard[T]) OnNext(v T) {
	if !g.stopped.Load() {
		g.downstream.OnNext(v)
	}
}

func (g *guard[T]) OnError(err error) {
	if g.stopped.CompareAndSwap(false, true) {
		g.downstream.OnError(err)
	}
}

func (g *guard[T]) OnComplete() {
	if g.stopped.CompareAndSwap(false, true) {
		g.downstream.OnComplete()
	}
}

// ─── Constructors ────────────────────────────────────────────────────────────

// Create builds a cold stream from fn. fn is called on every subscription
// with a guarded observer and returns an optional teardown function, which
// runs once when the subscriber unsubscribes. A panic inside fn is delivered
// as an ErrPanic error. The observer must not be called concurrently.
func Create[T any](fn func(o Observer[T]) func()) Stream[T] {
	return StreamFunc[T](func(o Observer[T]) Subscription {
		g := &guard[T]{downstream: o}
		teardown := runSource(g, fn)
		return SubscriptionFunc(asyncx.Once(func() {
			g.stopped.Store(true)
			if teardown != nil {
				teardown()
			}
		}))
	})
}

func runSource[T any](g *guard[T], fn func(o Observer[T]) func()) (teardown func()) {
	defer func() {
		if r := recover(); r != nil {
			g.OnError(panicError(r))
		}
	}()
	return fn(g)
}

// Just emits values in order, then completes.
func Just[T any](values ...T) Stream[T] {
	return Create(func(o Observer[T]) func() {
		for _, v := range values {
			o.OnNext(v)
		}
		o.OnComplete()
		return nil
	})
}

// Empty completes immediately without values.
func Empty[T any]() Stream[T] {
	return Just[T]()
}

// Fail terminates immediately with err.
func Fail[T any](err error) Stream[T] {
	return Create(func(o Observer[T]) func() {
		o.OnError(err)
		return nil
	})
}

// Never emits nothing and never terminates.
func Never[T any]() Stream[T] {
	return StreamFunc[T](func(Observer[T]) Subscription { return noopSubscription() })
}

// Defer calls factory on every subscription and subscribes to the stream it
// returns.
func Defer[T any](factory func() Stream[T]) Stream[T] {
	return StreamFunc[T](func(o Observer[T]) Subscription {
		return factory().Subscribe(o)
	})
}

// FromFunc runs fn on its own goroutine for every subscription and emits its
// single result. Unsubscribing cancels the context passed to fn.
func FromFunc[T any](fn func(ctx context.Context) (T, error)) Stream[T] {
	return Create(func(o Observer[T]) func() {
		ctx, cancel := context.WithCancel(context.Background())
		fut := asyncx.Run(func() (T, error) { return fn(ctx) })
		asyncx.Do(func() {
			defer cancel()
			v, err := fut.Await()
			if err != nil {
				o.OnError(err)
				return
			}
			o.OnNext(v)
			o.OnComplete()
		})
		return cancel
	})
}
