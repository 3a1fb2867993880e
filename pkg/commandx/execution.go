package commandx

import (
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/Abraxas-365/reactx/pkg/asyncx"
	"github.com/Abraxas-365/reactx/pkg/streamx"
)

// Execution is the handle of one invocation of a command's action. It is a
// multicast stream: every subscriber, however late, receives all values and
// the terminal event of the invocation. Unsubscribing never stops the
// action.
type Execution[Out any] struct {
	id        string
	input     any
	startedAt time.Time
	conn      *streamx.Connectable[Out]
	span      trace.Span
}

func newExecution[Out any](input any, source streamx.Stream[Out], scheduler asyncx.Scheduler) *Execution[Out] {
	return &Execution[Out]{
		id:        uuid.NewString(),
		input:     input,
		startedAt: time.Now(),
		conn:      streamx.Multicast(source, scheduler),
	}
}

// Subscribe attaches o to the execution.
func (e *Execution[Out]) Subscribe(o streamx.Observer[Out]) streamx.Subscription {
	return e.conn.Subscribe(o)
}

// ID returns the unique id of the execution.
func (e *Execution[Out]) ID() string { return e.id }

// Input returns the value the action was invoked with.
func (e *Execution[Out]) Input() any { return e.input }

// StartedAt returns when Execute created the execution.
func (e *Execution[Out]) StartedAt() time.Time { return e.startedAt }

// Done is closed once the action's stream has terminated.
func (e *Execution[Out]) Done() <-chan struct{} { return e.conn.Done() }

// Finished reports whether the action's stream has terminated.
func (e *Execution[Out]) Finished() bool { return e.conn.Terminated() }

func (e *Execution[Out]) connect() { e.conn.Connect() }
