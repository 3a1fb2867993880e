package streamx

import (
	"slices"
	"sync"
)

type replayMode uint8

const (
	replayNone replayMode = iota
	replayLatest
	replayAll
)

// subject is the shared core of Publish, Behavior and Replay: a hot
// multicast point with a per-observer serial queue. Events are queued for
// every observer under mu, so all observers see the same order.
type subject[T any] struct {
	mode replayMode

	mu        sync.Mutex
	latest    T
	hasLatest bool
	buffer    []T
	terminal  *Notification[T]
	observers []*serial[T]
}

func (s *subject[T]) Subscribe(o Observer[T]) Subscription {
	q := newSerial(o)

	s.mu.Lock()
	switch s.mode {
	case replayLatest:
		if s.hasLatest {
			q.push(NextOf(s.latest))
		}
	case replayAll:
		for _, v := range s.buffer {
			q.push(NextOf(v))
		}
	}
	if s.terminal != nil {
		q.push(*s.terminal)
	} else {
		s.observers = append(s.observers, q)
	}
	s.mu.Unlock()

	q.drain()

	return SubscriptionFunc(func() {
		q.cancel()
		s.remove(q)
	})
}

func (s *subject[T]) remove(q *serial[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = slices.DeleteFunc(s.observers, func(o *serial[T]) bool { return o == q })
}

// emit records n and queues it for every current observer, then drains.
func (s *subject[T]) emit(n Notification[T]) {
	s.mu.Lock()
	if s.terminal != nil {
		s.mu.Unlock()
		return
	}
	targets := s.record(n)
	s.mu.Unlock()

	for _, q := range targets {
		q.drain()
	}
}

// record must be called with mu held.
func (s *subject[T]) record(n Notification[T]) []*serial[T] {
	switch {
	case n.IsTerminal():
		s.terminal = &n
	case s.mode == replayLatest:
		s.latest, s.hasLatest = n.Value, true
	case s.mode == replayAll:
		s.buffer = append(s.buffer, n.Value)
	}

	targets := slices.Clone(s.observers)
	for _, q := range targets {
		q.push(n)
	}
	if n.IsTerminal() {
		s.observers = nil
	}
	return targets
}

func (s *subject[T]) OnNext(v T)        { s.emit(NextOf(v)) }
func (s *subject[T]) OnError(err error) { s.emit(ErrorOf[T](err)) }
func (s *subject[T]) OnComplete()       { s.emit(CompleteOf[T]()) }

// ─── Publish ─────────────────────────────────────────────────────────────────

// Publish is a hot stream that forwards events to the observers subscribed
// at the time of each event. Late subscribers only see the terminal event.
type Publish[T any] struct {
	subject[T]
}

// NewPublish creates a Publish subject.
func NewPublish[T any]() *Publish[T] {
	return &Publish[T]{subject[T]{mode: replayNone}}
}

// ─── Behavior ────────────────────────────────────────────────────────────────

// Behavior is a state cell: it always holds a current value, replays it to
// new subscribers and publishes every change.
type Behavior[T any] struct {
	subject[T]
}

// NewBehavior creates a Behavior holding initial.
func NewBehavior[T any](initial T) *Behavior[T] {
	return &Behavior[T]{subject[T]{mode: replayLatest, latest: initial, hasLatest: true}}
}

// Value returns the current value.
func (b *Behavior[T]) Value() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest
}

// Update atomically replaces the value with fn(current) and publishes it.
// If fn reports false the value is left untouched and nothing is published.
// Update returns the value in effect afterwards.
func (b *Behavior[T]) Update(fn func(current T) (T, bool)) (T, bool) {
	b.mu.Lock()
	if b.terminal != nil {
		defer b.mu.Unlock()
		return b.latest, false
	}
	next, ok := fn(b.latest)
	if !ok {
		defer b.mu.Unlock()
		return b.latest, false
	}
	targets := b.record(NextOf(next))
	b.mu.Unlock()

	for _, q := range targets {
		q.drain()
	}
	return next, true
}

// ─── Replay ──────────────────────────────────────────────────────────────────

// Replay buffers every value and the terminal event and replays them in
// order to each new subscriber.
type Replay[T any] struct {
	subject[T]
}

// NewReplay creates an empty Replay subject.
func NewReplay[T any]() *Replay[T] {
	return &Replay[T]{subject[T]{mode: replayAll}}
}

// Terminated reports whether the subject has seen its terminal event.
func (r *Replay[T]) Terminated() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.terminal != nil
}
