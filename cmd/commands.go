package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/reactx/pkg/asyncx"
	"github.com/Abraxas-365/reactx/pkg/commandx"
	"github.com/Abraxas-365/reactx/pkg/errx"
	"github.com/Abraxas-365/reactx/pkg/streamx"
)

// ─── report ──────────────────────────────────────────────────────────────────

type reportRequest struct {
	Title    string `json:"title"`
	Sections int    `json:"sections"`
	DelayMS  int    `json:"delay_ms"`
	Fail     bool   `json:"fail"`
}

type reportResult struct {
	Title       string    `json:"title"`
	Sections    int       `json:"sections"`
	GeneratedAt time.Time `json:"generated_at"`
}

// generateReport simulates a slow single-result job.
func generateReport(ctx context.Context, req reportRequest) (reportResult, error) {
	if req.Title == "" {
		return reportResult{}, errx.Validation("title is required")
	}
	select {
	case <-time.After(time.Duration(req.DelayMS) * time.Millisecond):
	case <-ctx.Done():
		return reportResult{}, ctx.Err()
	}
	if req.Fail {
		return reportResult{}, errx.External("report backend unavailable").WithDetail("title", req.Title)
	}
	return reportResult{Title: req.Title, Sections: req.Sections, GeneratedAt: time.Now()}, nil
}

func newReportCommand(opts ...commandx.Option) *commandx.Command[reportRequest, reportResult] {
	return commandx.NewFunc(generateReport, append([]commandx.Option{commandx.WithName("report")}, opts...)...)
}

// ─── countdown ───────────────────────────────────────────────────────────────

type countdownRequest struct {
	From       int `json:"from"`
	IntervalMS int `json:"interval_ms"`
}

// countdown emits From, From-1, ..., 0, one value per interval.
func countdown(req countdownRequest) (streamx.Stream[int], error) {
	if req.From < 0 {
		return nil, fmt.Errorf("from must not be negative, got %d", req.From)
	}
	interval := time.Duration(req.IntervalMS) * time.Millisecond
	return streamx.Create(func(o streamx.Observer[int]) func() {
		stop := make(chan struct{})
		asyncx.Do(func() {
			for i := req.From; i >= 0; i-- {
				select {
				case <-stop:
					return
				case <-time.After(interval):
				}
				o.OnNext(i)
			}
			o.OnComplete()
		})
		return asyncx.Once(func() { close(stop) })
	}), nil
}

func newCountdownCommand(opts ...commandx.Option) *commandx.Command[countdownRequest, int] {
	return commandx.New(countdown, append([]commandx.Option{commandx.WithName("countdown")}, opts...)...)
}
