// Package config defines all configuration structures for the
// FireCircuit-Intelligence engine.  No I/O or parsing logic lives here,
// only plain data types and validation.
package config

import (
	"fmt"
	"time"

	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// EngineConfig holds the electrical analysis tunables.
type EngineConfig struct {
	// SpareFraction is the capacity fraction reserved on every branch,
	// in [0,1).
	SpareFraction float64 `mapstructure:"spare_fraction"`

	// SystemVoltage is the nominal circuit voltage.
	SystemVoltage float64 `mapstructure:"system_voltage"`

	// MaxDropPercent is the allowed round-trip voltage drop percentage.
	MaxDropPercent float64 `mapstructure:"max_drop_percent"`

	// Parallelism bounds concurrent device groups in batch analysis.
	// Zero means GOMAXPROCS.
	Parallelism int `mapstructure:"parallelism"`
}

// CacheConfig holds the in-process cache tunables.
type CacheConfig struct {
	MappingTTL    time.Duration `mapstructure:"mapping_ttl"`
	SpecTTL       time.Duration `mapstructure:"spec_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	MaxEntries    int           `mapstructure:"max_entries"`
}

// CatalogConfig holds catalog loading parameters.
type CatalogConfig struct {
	// Path is the directory holding notification.json and initiating.json.
	// Empty means the compiled-in catalog.
	Path string `mapstructure:"path"`

	// Watch enables hot reloading when the catalog files change on disk.
	Watch bool `mapstructure:"watch"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// KafkaConfig holds the validation-issue publisher parameters.
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
}

// Config is the root configuration.
type Config struct {
	Server  ServerConfig      `mapstructure:"server"`
	Log     logging.LogConfig `mapstructure:"log"`
	Engine  EngineConfig      `mapstructure:"engine"`
	Cache   CacheConfig       `mapstructure:"cache"`
	Catalog CatalogConfig     `mapstructure:"catalog"`
	Metrics MetricsConfig     `mapstructure:"metrics"`
	Kafka   KafkaConfig       `mapstructure:"kafka"`
}

// Validate checks cross-field invariants.  Call after ApplyDefaults.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q must be debug, release, or test", c.Server.Mode)
	}
	if c.Engine.SpareFraction < 0 || c.Engine.SpareFraction >= 1 {
		return fmt.Errorf("engine.spare_fraction %v must be in [0,1)", c.Engine.SpareFraction)
	}
	if c.Engine.SystemVoltage <= 0 {
		return fmt.Errorf("engine.system_voltage %v must be positive", c.Engine.SystemVoltage)
	}
	if c.Engine.MaxDropPercent <= 0 || c.Engine.MaxDropPercent > 100 {
		return fmt.Errorf("engine.max_drop_percent %v must be in (0,100]", c.Engine.MaxDropPercent)
	}
	if c.Engine.Parallelism < 0 {
		return fmt.Errorf("engine.parallelism %d must not be negative", c.Engine.Parallelism)
	}
	if c.Cache.MappingTTL < 0 || c.Cache.SpecTTL < 0 {
		return fmt.Errorf("cache TTLs must not be negative")
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries %d must not be negative", c.Cache.MaxEntries)
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers must not be empty when kafka is enabled")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("kafka.topic must not be empty when kafka is enabled")
		}
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("metrics.namespace must not be empty when metrics are enabled")
	}
	return nil
}
