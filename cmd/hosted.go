package main

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Abraxas-365/reactx/pkg/commandx"
	"github.com/Abraxas-365/reactx/pkg/errx"
	"github.com/Abraxas-365/reactx/pkg/logx"
	"github.com/Abraxas-365/reactx/pkg/streamx"
)

// enabledSwitch is a remotely controllable enabled signal.
type enabledSwitch interface {
	Stream(ctx context.Context) streamx.Stream[bool]
	Set(ctx context.Context, enabled bool) error
}

// memorySwitch keeps the signal in process.
type memorySwitch struct {
	state *streamx.Behavior[bool]
}

func newMemorySwitch() *memorySwitch {
	return &memorySwitch{state: streamx.NewBehavior(true)}
}

func (s *memorySwitch) Stream(context.Context) streamx.Stream[bool] { return s.state }

func (s *memorySwitch) Set(_ context.Context, enabled bool) error {
	s.state.OnNext(enabled)
	return nil
}

// hostedCommand is the HTTP-facing view of a command, independent of its
// input and output types.
type hostedCommand interface {
	Name() string
	Status() commandStatus
	Execute(ctx context.Context, body []byte, wait bool) (executionResult, error)
	SetEnabled(ctx context.Context, enabled bool) error
}

type commandStatus struct {
	Name             string          `json:"name"`
	Enabled          bool            `json:"enabled"`
	Executing        bool            `json:"executing"`
	AllowsConcurrent bool            `json:"allows_concurrent"`
	Active           []executionInfo `json:"active"`
	RecentErrors     []errorInfo     `json:"recent_errors"`
}

type executionInfo struct {
	ID        string    `json:"id"`
	Input     any       `json:"input"`
	StartedAt time.Time `json:"started_at"`
}

type errorInfo struct {
	Error string    `json:"error"`
	Code  string    `json:"code,omitempty"`
	At    time.Time `json:"at"`
}

type executionResult struct {
	ExecutionID string `json:"execution_id,omitempty"`
	Values      any    `json:"values,omitempty"`
	Pending     bool   `json:"pending"`
}

// hosted adapts a typed command to hostedCommand. It keeps the recent
// errors of the command and logs its state transitions.
type hosted[In, Out any] struct {
	cmd     *commandx.Command[In, Out]
	toggle  enabledSwitch
	timeout time.Duration

	mu        sync.Mutex
	executing bool
	errors    []errorInfo
	history   int
}

func host[In, Out any](cmd *commandx.Command[In, Out], toggle enabledSwitch, history int, timeout time.Duration) *hosted[In, Out] {
	h := &hosted[In, Out]{cmd: cmd, toggle: toggle, history: history, timeout: timeout}

	cmd.Errors().Subscribe(streamx.Funcs[error]{Next: h.recordError})
	cmd.Executing().Subscribe(streamx.Funcs[bool]{Next: func(executing bool) {
		h.mu.Lock()
		h.executing = executing
		h.mu.Unlock()
		logx.WithFields(logx.Fields{"command": cmd.Name(), "executing": executing}).Debug("command state changed")
	}})
	cmd.Enabled().Subscribe(streamx.Funcs[bool]{Next: func(enabled bool) {
		logx.WithFields(logx.Fields{"command": cmd.Name(), "enabled": enabled}).Info("command availability changed")
	}})
	return h
}

func (h *hosted[In, Out]) Name() string { return h.cmd.Name() }

func (h *hosted[In, Out]) recordError(err error) {
	info := errorInfo{Error: err.Error(), At: time.Now()}
	var xerr *errx.Error
	if errx.As(err, &xerr) {
		info.Code = xerr.Code
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.history <= 0 {
		return
	}
	h.errors = append(h.errors, info)
	if over := len(h.errors) - h.history; over > 0 {
		h.errors = append([]errorInfo(nil), h.errors[over:]...)
	}
}

func (h *hosted[In, Out]) Status() commandStatus {
	executions := h.cmd.Executions()
	active := make([]executionInfo, 0, len(executions))
	for _, e := range executions {
		active = append(active, executionInfo{ID: e.ID(), Input: e.Input(), StartedAt: e.StartedAt()})
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return commandStatus{
		Name:             h.cmd.Name(),
		Enabled:          h.cmd.IsEnabled(),
		Executing:        h.executing,
		AllowsConcurrent: h.cmd.AllowsConcurrentExecution(),
		Active:           active,
		RecentErrors:     append([]errorInfo{}, h.errors...),
	}
}

// Execute decodes body into the command input and starts an execution.
// With wait it blocks until the execution terminates and returns its values.
func (h *hosted[In, Out]) Execute(ctx context.Context, body []byte, wait bool) (executionResult, error) {
	var input In
	if len(body) > 0 {
		if err := json.Unmarshal(body, &input); err != nil {
			return executionResult{}, errx.Wrap(err, "invalid command input", errx.TypeValidation).
				WithDetail("command", h.cmd.Name())
		}
	}

	stream := h.cmd.Execute(input)
	exec, started := stream.(*commandx.Execution[Out])
	if !started {
		_, err := streamx.First(ctx, stream)
		return executionResult{}, err
	}

	if !wait {
		return executionResult{ExecutionID: exec.ID(), Pending: true}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	values, err := streamx.Collect[Out](ctx, exec)
	if err != nil {
		return executionResult{ExecutionID: exec.ID()}, err
	}
	return executionResult{ExecutionID: exec.ID(), Values: values}, nil
}

func (h *hosted[In, Out]) SetEnabled(ctx context.Context, enabled bool) error {
	return h.toggle.Set(ctx, enabled)
}
