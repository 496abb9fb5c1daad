package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries everything the server needs from the environment.
type Config struct {
	DatabaseURL    string        `envconfig:"DATABASE_URL" required:"true"`
	ServerAddr     string        `envconfig:"SERVER_ADDR" default:"0.0.0.0"`
	ServerPort     int           `envconfig:"SERVER_PORT" default:"8080"`
	AllowedOrigins string        `envconfig:"ALLOWED_ORIGINS" default:""`
	ReadTimeout    time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout   time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout    time.Duration `envconfig:"IDLE_TIMEOUT" default:"120s"`
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return &cfg, nil
}

// ListenAddr returns the host:port pair the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerAddr, c.ServerPort)
}
