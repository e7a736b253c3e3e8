package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultServerMode, cfg.Server.Mode)
	assert.Equal(t, DefaultServerReadTimeout, cfg.Server.ReadTimeout)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.Equal(t, []string{"stdout"}, cfg.Log.OutputPaths)
	assert.Equal(t, DefaultSpareFraction, cfg.Engine.SpareFraction)
	assert.Equal(t, DefaultSystemVoltage, cfg.Engine.SystemVoltage)
	assert.Equal(t, DefaultMaxDropPercent, cfg.Engine.MaxDropPercent)
	assert.Equal(t, DefaultMappingTTL, cfg.Cache.MappingTTL)
	assert.Equal(t, DefaultSpecTTL, cfg.Cache.SpecTTL)
	assert.Equal(t, DefaultMaxEntries, cfg.Cache.MaxEntries)
	assert.Equal(t, DefaultMetricsNamespace, cfg.Metrics.Namespace)
	assert.Equal(t, DefaultKafkaTopic, cfg.Kafka.Topic)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9090
	cfg.Engine.SpareFraction = 0.35
	cfg.Cache.MappingTTL = 30 * time.Minute
	ApplyDefaults(cfg)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0.35, cfg.Engine.SpareFraction)
	assert.Equal(t, 30*time.Minute, cfg.Cache.MappingTTL)
	// Untouched fields still get defaults.
	assert.Equal(t, DefaultServerMode, cfg.Server.Mode)
}

func TestApplyDefaults_ParallelismZeroMeansAuto(t *testing.T) {
	cfg := NewDefault()
	assert.Zero(t, cfg.Engine.Parallelism)
	assert.NoError(t, cfg.Validate())
}
