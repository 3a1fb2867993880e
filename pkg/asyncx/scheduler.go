package asyncx

import (
	"sync"

	"github.com/Abraxas-365/reactx/pkg/logx"
)

// Scheduler runs callbacks on a designated context, such as a UI thread or a
// single-threaded event loop. Implementations must run tasks in the order
// they were scheduled and must not block the caller of Schedule.
type Scheduler interface {
	Schedule(task func())
}

// SchedulerFunc adapts a plain function to the Scheduler interface.
type SchedulerFunc func(task func())

// Schedule calls f(task).
func (f SchedulerFunc) Schedule(task func()) { f(task) }

// Immediate runs every task inline on the calling goroutine. Useful in tests
// and for callers that do their own serialization.
var Immediate Scheduler = SchedulerFunc(func(task func()) { task() })

// ─── Loop ────────────────────────────────────────────────────────────────────

// Loop is a serial event loop: a single goroutine that runs scheduled tasks
// one at a time in FIFO order. Schedule never blocks, so tasks may schedule
// further tasks on the same loop.
//
// A Loop must be started with Start. Tasks scheduled before Start are queued
// and run once the loop starts.
type Loop struct {
	name string

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	busy    bool
	started bool
	stopped bool
	done    chan struct{}
}

// NewLoop creates a stopped loop. The name is used in log fields.
func NewLoop(name string) *Loop {
	l := &Loop{
		name: name,
		done: make(chan struct{}),
	}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Name returns the loop name.
func (l *Loop) Name() string { return l.name }

// Start launches the loop goroutine. Calling Start more than once is a no-op.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started || l.stopped {
		return
	}
	l.started = true
	go l.run()
}

// Schedule enqueues task. Tasks scheduled after Stop are dropped.
func (l *Loop) Schedule(task func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		logx.WithFields(logx.Fields{"loop": l.name, "code": ErrLoopStopped.Code}).
			Warn("asyncx: task scheduled on stopped loop dropped")
		return
	}
	l.queue = append(l.queue, task)
	l.cond.Broadcast()
}

// Flush blocks until the loop is idle: the queue is empty and no task is
// running. Tasks scheduled by running tasks are waited for as well.
// Flush must not be called from a task running on the same loop.
func (l *Loop) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for (len(l.queue) > 0 || l.busy) && l.started && !l.isDone() {
		l.cond.Wait()
	}
}

// Stop runs the tasks that are already queued, then terminates the loop
// goroutine and waits for it to exit.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		<-l.done
		return
	}
	l.stopped = true
	started := l.started
	l.cond.Broadcast()
	l.mu.Unlock()

	if !started {
		close(l.done)
		return
	}
	<-l.done
}

func (l *Loop) isDone() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

func (l *Loop) run() {
	defer func() {
		l.mu.Lock()
		close(l.done)
		l.cond.Broadcast()
		l.mu.Unlock()
	}()

	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.stopped {
			l.cond.Wait()
		}
		if len(l.queue) == 0 && l.stopped {
			l.mu.Unlock()
			return
		}
		task := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.busy = true
		l.mu.Unlock()

		l.runTask(task)

		l.mu.Lock()
		l.busy = false
		l.cond.Broadcast()
		l.mu.Unlock()
	}
}

func (l *Loop) runTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logx.WithError(panicError(r)).
				WithField("loop", l.name).
				Error("asyncx: recovered panic in loop task")
		}
	}()
	task()
}
