package streamx

// Kind identifies the event carried by a Notification.
type Kind uint8

const (
	KindNext Kind = iota
	KindError
	KindComplete
)

func (k Kind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	default:
		return "complete"
	}
}

// Notification is a stream event reified as a value. See Materialize.
type Notification[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

// NextOf wraps a value.
func NextOf[T any](v T) Notification[T] { return Notification[T]{Kind: KindNext, Value: v} }

// ErrorOf wraps a terminal error.
func ErrorOf[T any](err error) Notification[T] { return Notification[T]{Kind: KindError, Err: err} }

// CompleteOf is the completion event.
func CompleteOf[T any]() Notification[T] { return Notification[T]{Kind: KindComplete} }

// IsError reports whether n carries an error.
func (n Notification[T]) IsError() bool { return n.Kind == KindError }

// IsTerminal reports whether n ends a stream.
func (n Notification[T]) IsTerminal() bool { return n.Kind != KindNext }

// Accept replays n onto o.
func (n Notification[T]) Accept(o Observer[T]) {
	switch n.Kind {
	case KindNext:
		o.OnNext(n.Value)
	case KindError:
		o.OnError(n.Err)
	default:
		o.OnComplete()
	}
}
