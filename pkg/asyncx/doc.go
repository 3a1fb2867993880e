// Package asyncx provides the small set of concurrency primitives the rest of
// the module is built on: futures, fire-and-forget helpers and schedulers.
//
// # Futures
//
// A [Future] represents a value that will be computed asynchronously.
// Use [Run] to start work immediately in a goroutine and [Future.Await] to
// block until the result is ready. Await is safe to call from multiple
// goroutines; [Future.AwaitCtx] gives up waiting when the context is done.
//
//	fut := asyncx.Run(func() (*Report, error) {
//	    return builder.Build(ctx, id)
//	})
//
//	report, err := fut.Await()
//
// A panic inside the function is recovered and returned as an [ErrPanic]
// error instead of crashing the process.
//
// # Fire-and-Forget
//
// [Do] launches a goroutine without tracking its result. [DoCtx] additionally
// checks whether the context is already cancelled before starting.
//
// # Schedulers
//
// A [Scheduler] is the "designated callback context" of a reactive
// component: the place where state changes are delivered to observers.
// Two implementations are provided:
//
//   - [Immediate] runs every task inline on the calling goroutine. Tests
//     use it to make delivery synchronous.
//   - [Loop] is a single goroutine draining a FIFO queue, the Go equivalent
//     of a UI main thread or event-loop tick queue.
//
// A Loop is started once and stopped on shutdown:
//
//	loop := asyncx.NewLoop("ui")
//	loop.Start()
//	defer loop.Stop()
//
//	loop.Schedule(func() { render(state) })
//	loop.Flush() // wait until the loop is idle
//
// Scheduling never blocks, so a task may schedule more work on the loop it
// is running on. Panics inside tasks are recovered and logged through logx
// so that one misbehaving observer cannot kill the loop.
package asyncx
