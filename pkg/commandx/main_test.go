package commandx_test

import (
	"io"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/Abraxas-365/reactx/pkg/commandx"
	"github.com/Abraxas-365/reactx/pkg/logx"
	"github.com/Abraxas-365/reactx/pkg/streamx"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quietLogger() *logx.Logger {
	cfg := logx.DefaultConfig()
	cfg.Level = logx.LevelOff
	cfg.Output = io.Discard
	return logx.NewLogger(cfg)
}

// controlled is an action whose executions are driven by the test: every
// call returns a fresh Publish subject the test emits on.
type controlled struct {
	mu    sync.Mutex
	calls []int
	runs  []*streamx.Publish[int]
}

func (c *controlled) action(n int) (streamx.Stream[int], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := streamx.NewPublish[int]()
	c.calls = append(c.calls, n)
	c.runs = append(c.runs, p)
	return p, nil
}

func (c *controlled) run(i int) *streamx.Publish[int] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runs[i]
}

func (c *controlled) Calls() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.calls...)
}

func newControlled(opts ...commandx.Option) (*commandx.Command[int, int], *controlled) {
	ctl := &controlled{}
	opts = append([]commandx.Option{commandx.WithLogger(quietLogger())}, opts...)
	return commandx.New(ctl.action, opts...), ctl
}

// manualScheduler queues tasks until RunAll is called.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []func()
}

func (s *manualScheduler) Schedule(task func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
}

func (s *manualScheduler) RunAll() {
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 {
			s.mu.Unlock()
			return
		}
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		s.mu.Unlock()
		task()
	}
}

type recorder[T any] struct {
	mu        sync.Mutex
	values    []T
	err       error
	completed bool
}

func (r *recorder[T]) OnNext(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder[T]) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *recorder[T]) OnComplete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = true
}

func (r *recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

func (r *recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *recorder[T]) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}
