package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Format represents the output format
type Format string

const (
	// FormatConsole outputs colored console logs (default)
	FormatConsole Format = "console"
	// FormatJSON outputs one JSON object per line
	FormatJSON Format = "json"
)

// Config holds the logger configuration
type Config struct {
	// Level is the minimum log level to output
	Level Level `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the output format
	Format Format `env:"LOG_FORMAT" envDefault:"console"`

	// EnableColors enables colored output (console format only)
	EnableColors bool `env:"LOG_COLOR" envDefault:"true"`

	// EnableCaller adds file and line number to logs
	EnableCaller bool `env:"LOG_CALLER" envDefault:"false"`

	// EnableTimestamp adds timestamp to logs
	EnableTimestamp bool `env:"LOG_TIMESTAMP" envDefault:"true"`

	// TimeFormat is a Go layout or one of RFC3339, RFC3339NANO, UNIX, UNIXMILLI
	TimeFormat string `env:"LOG_TIME_FORMAT" envDefault:"RFC3339"`

	// Output is where to write logs (defaults to os.Stdout)
	Output io.Writer `env:"-"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Level:           LevelInfo,
		Format:          FormatConsole,
		EnableColors:    true,
		EnableTimestamp: true,
		TimeFormat:      time.RFC3339,
		Output:          os.Stdout,
	}
}

// LoadFromEnv loads configuration from LOG_* environment variables. Invalid
// values fall back to the defaults.
func LoadFromEnv() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "logx: invalid environment, using defaults: %v\n", err)
		return DefaultConfig()
	}
	cfg.TimeFormat = resolveTimeFormat(cfg.TimeFormat)
	cfg.Output = os.Stdout
	return cfg
}

func resolveTimeFormat(name string) string {
	switch strings.ToUpper(name) {
	case "", "RFC3339":
		return time.RFC3339
	case "RFC3339NANO":
		return time.RFC3339Nano
	case "UNIX":
		return "unix"
	case "UNIXMILLI":
		return "unixmilli"
	default:
		return name
	}
}
