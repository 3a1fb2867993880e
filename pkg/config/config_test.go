package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/reactx/pkg/asyncx"
	"github.com/Abraxas-365/reactx/pkg/config"
	"github.com/Abraxas-365/reactx/pkg/logx"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.False(t, cfg.Command.AllowConcurrent)
	assert.Equal(t, config.SchedulerLoop, cfg.Command.Scheduler)
	assert.Equal(t, 50, cfg.Command.ErrorHistory)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "commandx:enabled", cfg.Redis.KeyPrefix)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.CORSOrigins)
	assert.False(t, cfg.OTel.Enabled)
	assert.Equal(t, logx.LevelInfo, cfg.Log.Level)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("COMMANDX_ALLOW_CONCURRENT", "true")
	t.Setenv("COMMANDX_SCHEDULER", "immediate")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("PORT", "9090")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Command.AllowConcurrent)
	assert.Equal(t, config.SchedulerImmediate, cfg.Command.Scheduler)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.OTel.Enabled)
	assert.Equal(t, logx.LevelDebug, cfg.Log.Level)
}

func TestLoad_InvalidScheduler(t *testing.T) {
	t.Setenv("COMMANDX_SCHEDULER", "threads")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COMMANDX_SCHEDULER")
}

func TestParseEnv_Error(t *testing.T) {
	var cfg config.ServerConfig
	t.Setenv("DEBUG", "not-a-bool")

	err := config.ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestCommandConfig_NewScheduler(t *testing.T) {
	sched, loop := config.CommandConfig{Scheduler: config.SchedulerImmediate}.NewScheduler()
	assert.Nil(t, loop)
	_, isLoop := sched.(*asyncx.Loop)
	assert.False(t, isLoop)

	sched, loop = config.CommandConfig{Scheduler: config.SchedulerLoop, LoopName: "ui"}.NewScheduler()
	require.NotNil(t, loop)
	assert.Equal(t, "ui", loop.Name())
	assert.Same(t, loop, sched)
}
