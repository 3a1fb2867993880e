package config

import (
	"fmt"

	"github.com/Abraxas-365/reactx/pkg/asyncx"
)

// Scheduler names accepted in COMMANDX_SCHEDULER.
const (
	SchedulerLoop      = "loop"
	SchedulerImmediate = "immediate"
)

// CommandConfig configures the commands hosted by the server.
type CommandConfig struct {
	AllowConcurrent bool   `env:"COMMANDX_ALLOW_CONCURRENT" envDefault:"false"`
	Scheduler       string `env:"COMMANDX_SCHEDULER" envDefault:"loop"`
	LoopName        string `env:"COMMANDX_LOOP_NAME" envDefault:"commandx"`
	ErrorHistory    int    `env:"COMMANDX_ERROR_HISTORY" envDefault:"50"`
}

func (c CommandConfig) validate() error {
	switch c.Scheduler {
	case SchedulerLoop, SchedulerImmediate:
	default:
		return fmt.Errorf("parse env: COMMANDX_SCHEDULER must be %q or %q, got %q",
			SchedulerLoop, SchedulerImmediate, c.Scheduler)
	}
	if c.ErrorHistory < 0 {
		return fmt.Errorf("parse env: COMMANDX_ERROR_HISTORY must not be negative")
	}
	return nil
}

// NewScheduler builds the callback context named by Scheduler. A Loop is
// returned unstarted; the caller owns its lifecycle.
func (c CommandConfig) NewScheduler() (asyncx.Scheduler, *asyncx.Loop) {
	if c.Scheduler == SchedulerImmediate {
		return asyncx.Immediate, nil
	}
	loop := asyncx.NewLoop(c.LoopName)
	return loop, loop
}
