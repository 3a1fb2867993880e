package commandx

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Abraxas-365/reactx/pkg/asyncx"
	"github.com/Abraxas-365/reactx/pkg/logx"
	"github.com/Abraxas-365/reactx/pkg/streamx"
)

// Action starts the work of one execution. It returns the stream that
// produces the execution's results; production must not begin before the
// stream is subscribed. A non-nil error, a panic or a nil stream is reported
// as ErrInvalidExecutionResult. The returned stream may be discarded
// unsubscribed when a racing call wins registration.
type Action[In, Out any] func(input In) (streamx.Stream[Out], error)

// Command wraps an Action and exposes its execution state as streams. A
// Command never terminates: executions fail and complete on their own
// handles while the command's state streams keep running.
type Command[In, Out any] struct {
	name      string
	action    Action[In, Out]
	scheduler asyncx.Scheduler
	logger    *logx.Logger
	tracer    trace.Tracer

	allows   atomic.Bool
	external atomic.Bool
	registry *registry[Out]

	executing  streamx.Stream[bool]
	enabled    streamx.Stream[bool]
	executions streamx.Stream[streamx.Stream[Out]]
	errors     streamx.Stream[error]
}

// New creates a command around action.
func New[In, Out any](action Action[In, Out], options ...Option) *Command[In, Out] {
	if action == nil {
		panic("commandx: nil action")
	}
	opts := defaultOptions()
	for _, o := range options {
		o(&opts)
	}
	opts.complete()

	c := &Command[In, Out]{
		name:      opts.Name,
		action:    action,
		scheduler: opts.Scheduler,
		logger:    opts.Logger,
		tracer:    opts.Tracer,
		registry:  newRegistry[Out](),
	}
	c.allows.Store(opts.AllowConcurrent)

	external := c.wireExternal(opts.Enabled)
	c.enabled = c.buildEnabled(external)
	c.executing = streamx.DistinctUntilChanged(streamx.ObserveOnAfterFirst(
		streamx.Map(c.registry.sizes(), func(active int) bool { return active > 0 }),
		c.scheduler,
	))
	c.executions = streamx.ObserveOn(
		streamx.Map(c.registry.added(), func(e *Execution[Out]) streamx.Stream[Out] {
			return streamx.CatchComplete[Out](e)
		}),
		c.scheduler,
	)
	c.errors = streamx.ObserveOn(
		streamx.FlatMap(c.registry.added(), func(e *Execution[Out]) streamx.Stream[error] {
			failures := streamx.Filter(streamx.Materialize[Out](e), streamx.Notification[Out].IsError)
			return streamx.Map(failures, func(n streamx.Notification[Out]) error { return n.Err })
		}),
		c.scheduler,
	)
	return c
}

// NewFunc creates a command whose action runs fn on its own goroutine and
// emits its single result.
func NewFunc[In, Out any](fn func(ctx context.Context, input In) (Out, error), options ...Option) *Command[In, Out] {
	return New(func(input In) (streamx.Stream[Out], error) {
		return streamx.FromFunc(func(ctx context.Context) (Out, error) {
			return fn(ctx, input)
		}), nil
	}, options...)
}

// Name returns the command name.
func (c *Command[In, Out]) Name() string { return c.name }

// Execute starts a new execution with input and returns its handle.
//
// If the command is disabled the returned stream fails with
// ErrCommandDisabled and the action is not invoked. If the action does not
// produce a stream the returned stream fails with ErrInvalidExecutionResult.
// Otherwise the execution is registered, production starts on the
// command's scheduler, and the handle relays the raw values and terminal
// event of the action's stream.
//
// When the command is serial and two calls race, both may invoke the action;
// the loser's stream is discarded without being subscribed.
func (c *Command[In, Out]) Execute(input In) streamx.Stream[Out] {
	if !c.IsEnabled() {
		c.logger.WithField("command", c.name).Warn("commandx: execution rejected, command disabled")
		return streamx.Fail[Out](disabledError(c.name))
	}

	source, err := c.invoke(input)
	if err != nil {
		c.logger.WithField("command", c.name).WithError(err).Warn("commandx: action produced no execution")
		return streamx.Fail[Out](err)
	}

	exec := newExecution(any(input), source, c.scheduler)
	_, exec.span = c.tracer.Start(context.Background(), "commandx.execute", trace.WithAttributes(
		attribute.String("commandx.command", c.name),
		attribute.String("commandx.execution_id", exec.id),
	))

	// Retire before any other observer sees the terminal event, so work
	// triggered from Errors or ExecutionStreams finds the execution gone.
	// A rejected handle is never connected and never fires.
	exec.Subscribe(streamx.Funcs[Out]{
		Error:    func(err error) { c.retire(exec, err) },
		Complete: func() { c.retire(exec, nil) },
	})

	if !c.registry.add(exec, c.admits) {
		exec.span.SetStatus(codes.Error, "command disabled")
		exec.span.End()
		c.logger.WithFields(logx.Fields{"command": c.name, "execution_id": exec.id}).
			Warn("commandx: execution rejected, another execution is running")
		return streamx.Fail[Out](disabledError(c.name))
	}

	c.logger.WithFields(logx.Fields{"command": c.name, "execution_id": exec.id}).
		Debug("commandx: execution started")
	exec.connect()
	return exec
}

func (c *Command[In, Out]) invoke(input In) (source streamx.Stream[Out], err error) {
	defer func() {
		if r := recover(); r != nil {
			source, err = nil, invalidResultError(c.name, input, recoveredError(r))
		}
	}()

	source, err = c.action(input)
	switch {
	case err != nil:
		return nil, invalidResultError(c.name, input, err)
	case source == nil:
		return nil, invalidResultError(c.name, input, nil)
	}
	return source, nil
}

func (c *Command[In, Out]) retire(e *Execution[Out], err error) {
	c.registry.remove(e)

	entry := c.logger.WithFields(logx.Fields{
		"command":      c.name,
		"execution_id": e.id,
		"duration_ms":  time.Since(e.startedAt).Milliseconds(),
	})
	if err != nil {
		e.span.RecordError(err)
		e.span.SetStatus(codes.Error, err.Error())
		entry.WithError(err).Warn("commandx: execution failed")
	} else {
		e.span.SetStatus(codes.Ok, "")
		entry.Debug("commandx: execution completed")
	}
	e.span.End()
}

// IsEnabled reads the current enabled state synchronously.
func (c *Command[In, Out]) IsEnabled() bool {
	return c.admits(len(c.registry.snapshot()))
}

// ActiveCount returns the number of running executions.
func (c *Command[In, Out]) ActiveCount() int {
	return len(c.registry.snapshot())
}

// Executions returns the running executions in start order.
func (c *Command[In, Out]) Executions() []*Execution[Out] {
	return slices.Clone(c.registry.snapshot())
}

// Executing emits whether at least one execution is running. The current
// state is delivered on subscription; changes arrive on the scheduler.
func (c *Command[In, Out]) Executing() streamx.Stream[bool] { return c.executing }

// Enabled emits whether Execute would currently start a new execution. The
// current state is delivered on subscription; changes arrive on the
// scheduler.
func (c *Command[In, Out]) Enabled() streamx.Stream[bool] { return c.enabled }

// ExecutionStreams emits the handle of every execution started after the
// subscription. Errors of the emitted streams are turned into completion.
func (c *Command[In, Out]) ExecutionStreams() streamx.Stream[streamx.Stream[Out]] {
	return c.executions
}

// Errors emits the error of every failed execution started after the
// subscription. It never terminates.
func (c *Command[In, Out]) Errors() streamx.Stream[error] { return c.errors }

// SwitchToLatest emits the values of the most recently started execution.
func (c *Command[In, Out]) SwitchToLatest() streamx.Stream[Out] {
	return streamx.SwitchLatest(c.executions)
}

// SetAllowsConcurrentExecution changes the concurrency policy. It applies
// from the next registry change and the next Execute call.
func (c *Command[In, Out]) SetAllowsConcurrentExecution(allow bool) {
	c.allows.Store(allow)
}

// AllowsConcurrentExecution reports the concurrency policy.
func (c *Command[In, Out]) AllowsConcurrentExecution() bool {
	return c.allows.Load()
}
