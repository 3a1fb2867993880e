package config

// RedisConfig configures the Redis-backed enabled switches. Redis is
// optional: without an address, switches are kept in memory.
type RedisConfig struct {
	Addr          string `env:"REDIS_ADDR"`
	Password      string `env:"REDIS_PASSWORD"`
	DB            int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix     string `env:"COMMANDX_ENABLED_KEY" envDefault:"commandx:enabled"`
	ChannelPrefix string `env:"COMMANDX_ENABLED_CHANNEL" envDefault:"commandx:enabled:events"`
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }
