// cmd/container.go
//
// Composition root. Owns infrastructure (Redis, scheduler loop) and the
// hosted commands. This is the only place that knows about ALL modules.
package main

import (
	"context"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abraxas-365/reactx/pkg/asyncx"
	"github.com/Abraxas-365/reactx/pkg/commandx"
	"github.com/Abraxas-365/reactx/pkg/commandx/commandxredis"
	"github.com/Abraxas-365/reactx/pkg/config"
	"github.com/Abraxas-365/reactx/pkg/logx"
)

const executeTimeout = 30 * time.Second

// Container holds shared infrastructure and the hosted commands.
type Container struct {
	Config *config.Config

	// Infrastructure
	Redis     *redis.Client
	Scheduler asyncx.Scheduler
	Loop      *asyncx.Loop

	// Commands by name
	Commands map[string]hostedCommand

	ctx    context.Context
	cancel context.CancelFunc
}

func NewContainer(cfg *config.Config) *Container {
	logx.Info("🔧 Initializing application container...")

	ctx, cancel := context.WithCancel(context.Background())
	c := &Container{
		Config:   cfg,
		Commands: make(map[string]hostedCommand),
		ctx:      ctx,
		cancel:   cancel,
	}

	c.initInfrastructure()
	c.initCommands()

	logx.Info("✅ Application container initialized")
	return c
}

// ---------------------------------------------------------------------------
// Infrastructure: scheduler, Redis
// ---------------------------------------------------------------------------

func (c *Container) initInfrastructure() {
	logx.Info("🏗️ Initializing infrastructure...")

	// 1. Callback context
	c.Scheduler, c.Loop = c.Config.Command.NewScheduler()
	if c.Loop != nil {
		c.Loop.Start()
		logx.Infof("  ✅ Scheduler loop %q started", c.Loop.Name())
	} else {
		logx.Info("  ✅ Immediate scheduler configured")
	}

	// 2. Redis (optional)
	if !c.Config.Redis.Enabled() {
		logx.Info("  Redis not configured, enabled switches are in memory")
		return
	}
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if _, err := c.Redis.Ping(c.ctx).Result(); err != nil {
		logx.Fatalf("Failed to connect to Redis: %v", err)
	}
	logx.Info("  ✅ Redis connected")
}

// newSwitch returns the enabled switch of the named command.
func (c *Container) newSwitch(name string) enabledSwitch {
	if c.Redis == nil {
		return newMemorySwitch()
	}
	rc := c.Config.Redis
	return commandxredis.NewSource(c.Redis,
		commandxredis.KeyFor(rc.KeyPrefix, name),
		commandxredis.KeyFor(rc.ChannelPrefix, name),
	)
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func (c *Container) initCommands() {
	logx.Info("📦 Initializing commands...")

	reportSwitch := c.newSwitch("report")
	report := newReportCommand(c.commandOptions(reportSwitch)...)
	c.register(host(report, reportSwitch, c.Config.Command.ErrorHistory, executeTimeout))

	countdownSwitch := c.newSwitch("countdown")
	countdown := newCountdownCommand(c.commandOptions(countdownSwitch)...)
	c.register(host(countdown, countdownSwitch, c.Config.Command.ErrorHistory, executeTimeout))
}

func (c *Container) commandOptions(toggle enabledSwitch) []commandx.Option {
	return []commandx.Option{
		commandx.WithScheduler(c.Scheduler),
		commandx.WithEnabled(toggle.Stream(c.ctx)),
		commandx.WithConcurrentExecution(c.Config.Command.AllowConcurrent),
	}
}

func (c *Container) register(cmd hostedCommand) {
	c.Commands[cmd.Name()] = cmd
	logx.Infof("  ✓ Command %q registered", cmd.Name())
}

// Command looks up a hosted command by name.
func (c *Container) Command(name string) (hostedCommand, error) {
	cmd, ok := c.Commands[name]
	if !ok {
		return nil, commandx.UnknownCommand(name)
	}
	return cmd, nil
}

// CommandNames returns the hosted command names in order.
func (c *Container) CommandNames() []string {
	names := make([]string, 0, len(c.Commands))
	for name := range c.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	c.cancel()

	if c.Loop != nil {
		c.Loop.Stop()
		logx.Info("  ✅ Scheduler loop stopped")
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("  ✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup complete")
}
