package config

import "time"

// Default values applied by ApplyDefaults when a field is left at its
// zero value.
const (
	DefaultServerPort            = 8080
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 30 * time.Second
	DefaultServerShutdownTimeout = 10 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultSpareFraction  = 0.20
	DefaultSystemVoltage  = 24.0
	DefaultMaxDropPercent = 10.0

	DefaultMappingTTL    = 4 * time.Hour
	DefaultSpecTTL       = 24 * time.Hour
	DefaultSweepInterval = 5 * time.Minute
	DefaultMaxEntries    = 10000

	DefaultMetricsNamespace = "firecircuit"

	DefaultKafkaTopic        = "firecircuit.validation.issues"
	DefaultKafkaBatchTimeout = time.Second
)

// ApplyDefaults fills zero-valued fields in place.
func ApplyDefaults(c *Config) {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.Mode == "" {
		c.Server.Mode = DefaultServerMode
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if len(c.Log.OutputPaths) == 0 {
		c.Log.OutputPaths = []string{"stdout"}
	}

	if c.Engine.SpareFraction == 0 {
		c.Engine.SpareFraction = DefaultSpareFraction
	}
	if c.Engine.SystemVoltage == 0 {
		c.Engine.SystemVoltage = DefaultSystemVoltage
	}
	if c.Engine.MaxDropPercent == 0 {
		c.Engine.MaxDropPercent = DefaultMaxDropPercent
	}

	if c.Cache.MappingTTL == 0 {
		c.Cache.MappingTTL = DefaultMappingTTL
	}
	if c.Cache.SpecTTL == 0 {
		c.Cache.SpecTTL = DefaultSpecTTL
	}
	if c.Cache.SweepInterval == 0 {
		c.Cache.SweepInterval = DefaultSweepInterval
	}
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = DefaultMaxEntries
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = DefaultKafkaTopic
	}
	if c.Kafka.BatchTimeout == 0 {
		c.Kafka.BatchTimeout = DefaultKafkaBatchTimeout
	}
}

// NewDefault returns a configuration with every default applied.
func NewDefault() *Config {
	c := &Config{}
	ApplyDefaults(c)
	return c
}
