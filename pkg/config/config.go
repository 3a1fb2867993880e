package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/Abraxas-365/reactx/pkg/logx"
)

// Config aggregates every configuration section of the server.
type Config struct {
	Log     logx.Config
	Command CommandConfig
	Redis   RedisConfig
	Server  ServerConfig
	OTel    OTelConfig
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses every section from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Command.validate(); err != nil {
		return nil, err
	}
	cfg.Log = *logx.LoadFromEnv()
	return cfg, nil
}
