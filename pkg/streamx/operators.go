package streamx

import (
	"sync"
	"sync/atomic"

	"github.com/Abraxas-365/reactx/pkg/asyncx"
)

// Map transforms every value with fn.
func Map[T, R any](source Stream[T], fn func(T) R) Stream[R] {
	return StreamFunc[R](func(o Observer[R]) Subscription {
		return source.Subscribe(Funcs[T]{
			Next:     func(v T) { o.OnNext(fn(v)) },
			Error:    o.OnError,
			Complete: o.OnComplete,
		})
	})
}

// Filter forwards only the values for which keep returns true.
func Filter[T any](source Stream[T], keep func(T) bool) Stream[T] {
	return StreamFunc[T](func(o Observer[T]) Subscription {
		return source.Subscribe(Funcs[T]{
			Next: func(v T) {
				if keep(v) {
					o.OnNext(v)
				}
			},
			Error:    o.OnError,
			Complete: o.OnComplete,
		})
	})
}

// DistinctUntilChanged drops values equal to the previous one.
func DistinctUntilChanged[T comparable](source Stream[T]) Stream[T] {
	return StreamFunc[T](func(o Observer[T]) Subscription {
		var (
			mu   sync.Mutex
			last T
			seen bool
		)
		return source.Subscribe(Funcs[T]{
			Next: func(v T) {
				mu.Lock()
				dup := seen && last == v
				last, seen = v, true
				mu.Unlock()
				if !dup {
					o.OnNext(v)
				}
			},
			Error:    o.OnError,
			Complete: o.OnComplete,
		})
	})
}

// StartWith emits values before the events of source.
func StartWith[T any](source Stream[T], values ...T) Stream[T] {
	return StreamFunc[T](func(o Observer[T]) Subscription {
		for _, v := range values {
			o.OnNext(v)
		}
		return source.Subscribe(o)
	})
}

// CatchComplete turns an error of source into a quiet completion.
func CatchComplete[T any](source Stream[T]) Stream[T] {
	return StreamFunc[T](func(o Observer[T]) Subscription {
		return source.Subscribe(Funcs[T]{
			Next:     o.OnNext,
			Error:    func(error) { o.OnComplete() },
			Complete: o.OnComplete,
		})
	})
}

// Materialize emits every event of source, including the terminal one, as a
// Notification value and then completes. It never errors.
func Materialize[T any](source Stream[T]) Stream[Notification[T]] {
	return StreamFunc[Notification[T]](func(o Observer[Notification[T]]) Subscription {
		return source.Subscribe(Funcs[T]{
			Next: func(v T) { o.OnNext(NextOf(v)) },
			Error: func(err error) {
				o.OnNext(ErrorOf[T](err))
				o.OnComplete()
			},
			Complete: func() {
				o.OnNext(CompleteOf[T]())
				o.OnComplete()
			},
		})
	})
}

// CombineLatest emits fn(a, b) whenever either input emits, once both have
// emitted at least once. It completes when both inputs complete, or as soon
// as one completes without ever having emitted.
func CombineLatest[A, B, R any](a Stream[A], b Stream[B], fn func(A, B) R) Stream[R] {
	return StreamFunc[R](func(o Observer[R]) Subscription {
		q := newSerial(o)
		var (
			mu           sync.Mutex
			va           A
			vb           B
			hasA, hasB   bool
			doneA, doneB bool
		)
		emitLocked := func() {
			if hasA && hasB {
				q.push(NextOf(fn(va, vb)))
			}
		}
		completeLocked := func(has bool) {
			if !has || (doneA && doneB) {
				q.push(CompleteOf[R]())
			}
		}
		fail := func(err error) {
			q.push(ErrorOf[R](err))
			q.drain()
		}

		subA := a.Subscribe(Funcs[A]{
			Next: func(v A) {
				mu.Lock()
				va, hasA = v, true
				emitLocked()
				mu.Unlock()
				q.drain()
			},
			Error: fail,
			Complete: func() {
				mu.Lock()
				doneA = true
				completeLocked(hasA)
				mu.Unlock()
				q.drain()
			},
		})
		subB := b.Subscribe(Funcs[B]{
			Next: func(v B) {
				mu.Lock()
				vb, hasB = v, true
				emitLocked()
				mu.Unlock()
				q.drain()
			},
			Error: fail,
			Complete: func() {
				mu.Lock()
				doneB = true
				completeLocked(hasB)
				mu.Unlock()
				q.drain()
			},
		})
		return SubscriptionFunc(func() {
			q.cancel()
			subA.Unsubscribe()
			subB.Unsubscribe()
		})
	})
}

// ObserveOn delivers every event of source through scheduler.
func ObserveOn[T any](source Stream[T], scheduler asyncx.Scheduler) Stream[T] {
	return observeOn(source, scheduler, false)
}

// ObserveOnAfterFirst delivers the first event of each subscription inline,
// on the goroutine that produced it, and every later event through
// scheduler. State streams use it so that subscribers get the current value
// without waiting for the scheduler.
func ObserveOnAfterFirst[T any](source Stream[T], scheduler asyncx.Scheduler) Stream[T] {
	return observeOn(source, scheduler, true)
}

func observeOn[T any](source Stream[T], scheduler asyncx.Scheduler, inlineFirst bool) Stream[T] {
	return StreamFunc[T](func(o Observer[T]) Subscription {
		q := newSerial(o)
		var first atomic.Bool
		first.Store(inlineFirst)

		forward := func(n Notification[T]) {
			q.push(n)
			if first.CompareAndSwap(true, false) {
				q.drain()
				return
			}
			scheduler.Schedule(q.drain)
		}
		sub := source.Subscribe(Funcs[T]{
			Next:     func(v T) { forward(NextOf(v)) },
			Error:    func(err error) { forward(ErrorOf[T](err)) },
			Complete: func() { forward(CompleteOf[T]()) },
		})
		return SubscriptionFunc(func() {
			q.cancel()
			sub.Unsubscribe()
		})
	})
}

// FlatMap subscribes to fn(v) for every value of source and merges the
// values of all inner streams. It completes once source and every inner
// stream have completed. An error from any stream is forwarded and ends the
// merged stream.
func FlatMap[T, R any](source Stream[T], fn func(T) Stream[R]) Stream[R] {
	return StreamFunc[R](func(o Observer[R]) Subscription {
		q := newSerial(o)
		var (
			mu     sync.Mutex
			active = 1
			nextID int
			inners = map[int]Subscription{}
			failed bool
		)
		release := func() {
			mu.Lock()
			active--
			done := active == 0 && !failed
			mu.Unlock()
			if done {
				q.push(CompleteOf[R]())
				q.drain()
			}
		}
		fail := func(err error) {
			mu.Lock()
			failed = true
			mu.Unlock()
			q.push(ErrorOf[R](err))
			q.drain()
		}

		outer := source.Subscribe(Funcs[T]{
			Next: func(v T) {
				inner := fn(v)
				mu.Lock()
				if failed {
					mu.Unlock()
					return
				}
				id := nextID
				nextID++
				active++
				inners[id] = nil
				mu.Unlock()

				sub := inner.Subscribe(Funcs[R]{
					Next: func(r R) {
						q.push(NextOf(r))
						q.drain()
					},
					Error: fail,
					Complete: func() {
						mu.Lock()
						delete(inners, id)
						mu.Unlock()
						release()
					},
				})

				mu.Lock()
				if _, live := inners[id]; live {
					inners[id] = sub
				}
				mu.Unlock()
			},
			Error:    fail,
			Complete: release,
		})

		return SubscriptionFunc(func() {
			q.cancel()
			outer.Unsubscribe()
			mu.Lock()
			subs := inners
			inners = map[int]Subscription{}
			mu.Unlock()
			for _, s := range subs {
				if s != nil {
					s.Unsubscribe()
				}
			}
		})
	})
}

// SwitchLatest mirrors the most recent inner stream emitted by source. When
// a new inner stream arrives the previous one is unsubscribed and none of
// its later events are delivered. It completes once source has completed
// and the current inner stream has completed.
func SwitchLatest[T any](source Stream[Stream[T]]) Stream[T] {
	return StreamFunc[T](func(o Observer[T]) Subscription {
		q := newSerial(o)
		var (
			mu          sync.Mutex
			gen         int
			current     Subscription
			innerActive bool
			outerDone   bool
		)
		pushIfCurrent := func(my int, n Notification[T]) {
			mu.Lock()
			if my == gen {
				q.push(n)
			}
			mu.Unlock()
			q.drain()
		}

		outer := source.Subscribe(Funcs[Stream[T]]{
			Next: func(inner Stream[T]) {
				mu.Lock()
				gen++
				my := gen
				prev := current
				current = nil
				innerActive = true
				mu.Unlock()
				if prev != nil {
					prev.Unsubscribe()
				}

				sub := inner.Subscribe(Funcs[T]{
					Next:  func(v T) { pushIfCurrent(my, NextOf(v)) },
					Error: func(err error) { pushIfCurrent(my, ErrorOf[T](err)) },
					Complete: func() {
						mu.Lock()
						if my == gen {
							innerActive = false
							if outerDone {
								q.push(CompleteOf[T]())
							}
						}
						mu.Unlock()
						q.drain()
					},
				})

				mu.Lock()
				stale := my != gen
				if !stale {
					current = sub
				}
				mu.Unlock()
				if stale {
					sub.Unsubscribe()
				}
			},
			Error: func(err error) {
				q.push(ErrorOf[T](err))
				q.drain()
			},
			Complete: func() {
				mu.Lock()
				outerDone = true
				if !innerActive {
					q.push(CompleteOf[T]())
				}
				mu.Unlock()
				q.drain()
			},
		})

		return SubscriptionFunc(func() {
			q.cancel()
			outer.Unsubscribe()
			mu.Lock()
			cur := current
			current = nil
			gen++
			mu.Unlock()
			if cur != nil {
				cur.Unsubscribe()
			}
		})
	})
}

// ReplayLatest shares a single subscription to source among all subscribers
// and replays the most recent value to each new one. source is subscribed
// when the first subscriber arrives and is never unsubscribed.
func ReplayLatest[T any](source Stream[T]) Stream[T] {
	s := &subject[T]{mode: replayLatest}
	var connected atomic.Bool
	return StreamFunc[T](func(o Observer[T]) Subscription {
		sub := s.Subscribe(o)
		if connected.CompareAndSwap(false, true) {
			source.Subscribe(s)
		}
		return sub
	})
}
