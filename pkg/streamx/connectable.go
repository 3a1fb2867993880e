package streamx

import (
	"sync"

	"github.com/Abraxas-365/reactx/pkg/asyncx"
)

// Connectable is a hot, multicast wrapper around a cold source. Observers
// may subscribe at any time; production starts only when Connect is called,
// and the source is then subscribed exactly once, on the scheduler.
//
// Every value and the terminal event are retained, so an observer that
// subscribes after production started (or finished) still receives the
// complete sequence.
type Connectable[T any] struct {
	source    Stream[T]
	scheduler asyncx.Scheduler
	subject   *Replay[T]
	connect   sync.Once
	done      chan struct{}
}

// Multicast wraps source. scheduler is where the source subscription (and
// with it, production) starts; nil means asyncx.Immediate.
func Multicast[T any](source Stream[T], scheduler asyncx.Scheduler) *Connectable[T] {
	if scheduler == nil {
		scheduler = asyncx.Immediate
	}
	c := &Connectable[T]{
		source:    source,
		scheduler: scheduler,
		subject:   NewReplay[T](),
		done:      make(chan struct{}),
	}
	c.subject.Subscribe(Funcs[T]{
		Error:    func(error) { close(c.done) },
		Complete: func() { close(c.done) },
	})
	return c
}

// Subscribe registers o. It never triggers production.
func (c *Connectable[T]) Subscribe(o Observer[T]) Subscription {
	return c.subject.Subscribe(o)
}

// Connect schedules the single subscription to the source. Later calls are
// no-ops.
func (c *Connectable[T]) Connect() {
	c.connect.Do(func() {
		c.scheduler.Schedule(func() {
			c.source.Subscribe(c.subject)
		})
	})
}

// Done is closed once the source has terminated.
func (c *Connectable[T]) Done() <-chan struct{} {
	return c.done
}

// Terminated reports whether the source has terminated.
func (c *Connectable[T]) Terminated() bool {
	return c.subject.Terminated()
}
