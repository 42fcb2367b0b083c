package config

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// Option overrides a value read from the environment.
type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) { c.Log.LogLevel = level }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) { c.Server.WriteTimeout = d }
}

func WithStorageDriver(driver string) Option {
	return func(c *Config) { c.Storage.Driver = driver }
}

// Quiet keeps NewConfig from printing the resolved config to stdout.
func Quiet() Option {
	return func(c *Config) { c.quiet = true }
}
