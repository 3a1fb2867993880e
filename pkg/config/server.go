package config

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port        string `env:"PORT" envDefault:"8080"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
	AppVersion  string `env:"APP_VERSION" envDefault:"1.0.0"`
	Debug       bool   `env:"DEBUG" envDefault:"false"`
}
