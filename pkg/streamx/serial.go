package streamx

import "sync"

// serial delivers notifications to one observer strictly one at a time and
// in push order. Producers push under their own lock, which fixes the order,
// and then call drain outside it. Whoever finds the queue idle delivers
// everything queued, including notifications pushed re-entrantly by the
// observer itself.
type serial[T any] struct {
	observer Observer[T]

	mu        sync.Mutex
	queue     []Notification[T]
	draining  bool
	closed    bool
	cancelled bool
}

func newSerial[T any](o Observer[T]) *serial[T] {
	return &serial[T]{observer: o}
}

func (s *serial[T]) push(n Notification[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.cancelled {
		return
	}
	s.queue = append(s.queue, n)
	if n.IsTerminal() {
		s.closed = true
	}
}

func (s *serial[T]) drain() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	for len(s.queue) > 0 && !s.cancelled {
		n := s.queue[0]
		s.queue[0] = Notification[T]{}
		s.queue = s.queue[1:]
		s.mu.Unlock()
		n.Accept(s.observer)
		s.mu.Lock()
	}
	s.draining = false
	s.mu.Unlock()
}

func (s *serial[T]) cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = true
	s.queue = nil
}
