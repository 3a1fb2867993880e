// Package streamx is a small push-based stream toolkit: just enough reactive
// plumbing to build stateful UI-style components such as commandx.
//
// # Streams and Observers
//
// A [Stream] delivers values to an [Observer], followed by at most one
// terminal event: an error or a completion. [Funcs] adapts plain callbacks:
//
//	sub := stream.Subscribe(streamx.Funcs[int]{
//	    Next:  func(v int) { fmt.Println(v) },
//	    Error: func(err error) { log.Println(err) },
//	})
//	defer sub.Unsubscribe()
//
// Cold streams are built with [Create], [Just], [Empty], [Fail], [Defer]
// and [FromFunc]; the latter runs a function on its own goroutine through
// asyncx futures and is the usual way to write an async action.
//
// # Subjects
//
// Subjects are hot streams that are also observers:
//
//   - [Publish] forwards events to current subscribers only.
//   - [Behavior] is a state cell. It always has a value, replays it on
//     subscribe and publishes every change. [Behavior.Update] is an atomic
//     read-modify-publish step.
//   - [Replay] retains every event for late subscribers.
//
// Every subscriber of a subject gets its own serial delivery queue. Events
// are queued for all subscribers under the subject lock and delivered
// outside it, so each observer sees events one at a time, in the same global
// order, and may safely emit back into the subject it is observing.
//
// # Multicast with explicit connect
//
// [Multicast] returns a [Connectable]: observers can register first and
// production starts only on [Connectable.Connect], on a chosen
// asyncx.Scheduler. This is what guarantees that bookkeeping observers see
// an execution before any of its values.
//
// # Operators
//
// [Map], [Filter], [DistinctUntilChanged], [StartWith], [CatchComplete],
// [Materialize], [CombineLatest], [FlatMap], [SwitchLatest], [ObserveOn],
// [ObserveOnAfterFirst] and [ReplayLatest].
//
// # Blocking helpers
//
// [First] and [Collect] bridge streams back into plain Go calls and honour
// context cancellation.
package streamx
