package lifecycle

import (
	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
)

const (
	// DefaultSize is the ID capacity an allocator starts with when none is
	// configured.
	DefaultSize = 100000
	// DefaultRecycleThreshold is the fraction of the default capacity the
	// recycle pool must exceed before removed IDs are reused.
	DefaultRecycleThreshold = 0.01
)

// Config is the environment-driven configuration of the entity lifecycle.
// Fields left unset in the environment keep their code defaults.
type Config struct {
	DefaultSize      int     `config:"LIFECYCLE_DEFAULT_SIZE"`
	RecycleThreshold float64 `config:"LIFECYCLE_RECYCLE_THRESHOLD"`
	LogLevel         string  `config:"LIFECYCLE_LOG_LEVEL"`
	RedisAddress     string  `config:"LIFECYCLE_REDIS_ADDRESS"`
	RedisPassword    string  `config:"LIFECYCLE_REDIS_PASSWORD"`
	StatsdAddress    string  `config:"LIFECYCLE_STATSD_ADDRESS"`
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() (Config, error) {
	cfg := Config{
		DefaultSize:      DefaultSize,
		RecycleThreshold: DefaultRecycleThreshold,
	}
	if err := config.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to load config from environment")
	}
	if cfg.DefaultSize <= 0 {
		return cfg, eris.Wrap(ErrInvalidDefaultSize, "LIFECYCLE_DEFAULT_SIZE")
	}
	if cfg.RecycleThreshold < 0 || cfg.RecycleThreshold > 1 {
		return cfg, eris.Wrap(ErrInvalidRecycleThreshold, "LIFECYCLE_RECYCLE_THRESHOLD")
	}
	return cfg, nil
}

// Options converts the configuration into allocator options.
func (c Config) Options() []Option {
	return []Option{
		WithDefaultSize(c.DefaultSize),
		WithRecycleThreshold(c.RecycleThreshold),
	}
}
