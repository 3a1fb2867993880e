// Package commandx provides reactive commands: triggerable asynchronous
// actions whose availability and progress are observable as streams.
//
// # Commands
//
// A Command wraps an Action. Each call to Execute starts one execution and
// returns its handle, a multicast stream of the action's results:
//
//	cmd := commandx.New(func(n int) (streamx.Stream[int], error) {
//		return streamx.Just(n * 2), nil
//	}, commandx.WithName("double"))
//
//	v, err := streamx.First(ctx, cmd.Execute(21)) // 42
//
// # State
//
// Executing reports whether any execution is running. Enabled reports
// whether Execute would start a new one: the external signal given with
// WithEnabled must be true, and unless concurrent execution is allowed no
// other execution may be running. Both deliver the current value on
// subscription and later changes on the command's scheduler.
//
// # Results and errors
//
// ExecutionStreams emits the handle of every new execution with its error
// turned into completion. Errors emits each execution's error as a value and
// never terminates, so one failed execution does not end the command.
// SwitchToLatest follows the most recent execution only.
//
// Execute itself fails fast with ErrCommandDisabled when the command is
// disabled and with ErrInvalidExecutionResult when the action does not
// produce a stream. Neither touches the command's state.
package commandx
