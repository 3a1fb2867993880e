package commandx

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Abraxas-365/reactx/pkg/asyncx"
	"github.com/Abraxas-365/reactx/pkg/logx"
	"github.com/Abraxas-365/reactx/pkg/streamx"
)

const tracerName = "github.com/Abraxas-365/reactx/pkg/commandx"

// Options configures a Command.
type Options struct {
	// Name identifies the command in logs, spans and errors.
	Name string

	// Enabled is the external enabled signal. Nil means always enabled.
	Enabled streamx.Stream[bool]

	// Scheduler is the callback context that state changes, execution
	// streams and errors are delivered on.
	Scheduler asyncx.Scheduler

	// AllowConcurrent lets executions overlap.
	AllowConcurrent bool

	Logger *logx.Logger
	Tracer trace.Tracer
}

func defaultOptions() Options {
	return Options{
		Name:      "command",
		Scheduler: asyncx.Immediate,
	}
}

func (o *Options) complete() {
	if o.Scheduler == nil {
		o.Scheduler = asyncx.Immediate
	}
	if o.Logger == nil {
		o.Logger = logx.GetDefaultLogger()
	}
	if o.Tracer == nil {
		o.Tracer = otel.Tracer(tracerName)
	}
}

// Option is a functional option for configuring a Command.
type Option func(*Options)

// WithName sets the command name.
func WithName(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.Name = name
		}
	}
}

// WithEnabled gates the command on an external boolean signal. Until the
// signal emits, the command counts as enabled.
func WithEnabled(enabled streamx.Stream[bool]) Option {
	return func(o *Options) {
		o.Enabled = enabled
	}
}

// WithScheduler sets the callback context.
func WithScheduler(s asyncx.Scheduler) Option {
	return func(o *Options) {
		o.Scheduler = s
	}
}

// WithConcurrentExecution sets whether executions may overlap.
func WithConcurrentExecution(allow bool) Option {
	return func(o *Options) {
		o.AllowConcurrent = allow
	}
}

// WithLogger sets the logger. Defaults to the logx default logger.
func WithLogger(l *logx.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithTracer sets the tracer used for execution spans. Defaults to the
// global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		o.Tracer = t
	}
}
