package commandx

import (
	"slices"

	"github.com/Abraxas-365/reactx/pkg/streamx"
)

// registry holds the active executions of a command. Snapshots are
// immutable: every change publishes a fresh slice.
type registry[Out any] struct {
	state *streamx.Behavior[[]*Execution[Out]]
}

func newRegistry[Out any]() *registry[Out] {
	return &registry[Out]{state: streamx.NewBehavior([]*Execution[Out]{})}
}

// add appends e if admit accepts the current number of active executions.
// The check and the append happen atomically.
func (r *registry[Out]) add(e *Execution[Out], admit func(active int) bool) bool {
	_, ok := r.state.Update(func(cur []*Execution[Out]) ([]*Execution[Out], bool) {
		if !admit(len(cur)) {
			return nil, false
		}
		next := make([]*Execution[Out], 0, len(cur)+1)
		next = append(next, cur...)
		return append(next, e), true
	})
	return ok
}

// remove drops e. Removing an execution that is not registered is a no-op.
func (r *registry[Out]) remove(e *Execution[Out]) bool {
	_, ok := r.state.Update(func(cur []*Execution[Out]) ([]*Execution[Out], bool) {
		i := slices.Index(cur, e)
		if i < 0 {
			return nil, false
		}
		return slices.Delete(slices.Clone(cur), i, i+1), true
	})
	return ok
}

func (r *registry[Out]) snapshot() []*Execution[Out] {
	return r.state.Value()
}

// sizes emits the number of active executions, starting with the current one.
func (r *registry[Out]) sizes() streamx.Stream[int] {
	return streamx.Map[[]*Execution[Out]](r.state, func(list []*Execution[Out]) int { return len(list) })
}

// added emits every execution registered after the subscription, once.
// Executions already active when subscribing are skipped.
func (r *registry[Out]) added() streamx.Stream[*Execution[Out]] {
	return streamx.StreamFunc[*Execution[Out]](func(o streamx.Observer[*Execution[Out]]) streamx.Subscription {
		var seen map[*Execution[Out]]struct{}
		return r.state.Subscribe(streamx.Funcs[[]*Execution[Out]]{
			Next: func(list []*Execution[Out]) {
				next := make(map[*Execution[Out]]struct{}, len(list))
				for _, e := range list {
					next[e] = struct{}{}
					if seen == nil {
						continue
					}
					if _, ok := seen[e]; !ok {
						o.OnNext(e)
					}
				}
				seen = next
			},
		})
	})
}
