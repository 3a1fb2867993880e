package commandx

import (
	"github.com/Abraxas-365/reactx/pkg/logx"
	"github.com/Abraxas-365/reactx/pkg/streamx"
)

// wireExternal shares the external enabled signal, prefixed with true, and
// keeps c.external in sync with its latest value. Without a source the
// command is always externally enabled.
func (c *Command[In, Out]) wireExternal(source streamx.Stream[bool]) streamx.Stream[bool] {
	if source == nil {
		c.external.Store(true)
		return streamx.Just(true)
	}
	shared := streamx.ReplayLatest(streamx.StartWith(freezeOnTerminal(source, c.logger, c.name), true))
	shared.Subscribe(streamx.Funcs[bool]{Next: c.external.Store})
	return shared
}

// freezeOnTerminal hides the terminal event of source. The command keeps
// the last value the source emitted.
func freezeOnTerminal(source streamx.Stream[bool], logger *logx.Logger, name string) streamx.Stream[bool] {
	return streamx.StreamFunc[bool](func(o streamx.Observer[bool]) streamx.Subscription {
		return source.Subscribe(streamx.Funcs[bool]{
			Next: o.OnNext,
			Error: func(err error) {
				logger.WithField("command", name).WithError(err).
					Warn("commandx: enabled source failed, keeping last value")
			},
			Complete: func() {
				logger.WithField("command", name).
					Debug("commandx: enabled source completed, keeping last value")
			},
		})
	})
}

// buildEnabled combines the external signal with the concurrency policy:
// external AND (concurrent allowed OR nothing running).
func (c *Command[In, Out]) buildEnabled(external streamx.Stream[bool]) streamx.Stream[bool] {
	moreAllowed := streamx.Map(c.registry.sizes(), func(active int) bool {
		return c.allows.Load() || active == 0
	})
	immediate := streamx.CombineLatest(external, moreAllowed, func(ext, more bool) bool {
		return ext && more
	})
	return streamx.ReplayLatest(
		streamx.DistinctUntilChanged(streamx.ObserveOnAfterFirst(immediate, c.scheduler)),
	)
}

// admits reports whether a new execution may start while active others run.
func (c *Command[In, Out]) admits(active int) bool {
	return c.external.Load() && (c.allows.Load() || active == 0)
}
