package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	assert.Equal(t, Field{Key: "n", Value: 3}, Int("n", 3))
	assert.Equal(t, Field{Key: "f", Value: 0.221}, Float64("f", 0.221))
	assert.Equal(t, Field{Key: "b", Value: true}, Bool("b", true))
	assert.Equal(t, Field{Key: "error", Value: "<nil>"}, Err(nil))
}

func TestNewLogger_Defaults(t *testing.T) {
	log, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, log)
	// Must not panic on any level.
	log.Debug("debug msg")
	log.Info("info msg", String("device", "horn strobe"))
	log.Warn("warn msg")
	log.Error("error msg", Err(assert.AnError))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestLogger_WithAndNamed(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	log := NewLoggerFromCore(core)

	child := log.With(String("circuit", "NAC-1")).Named("mapping")
	child.Info("analyzed")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "analyzed", entries[0].Message)
	assert.Equal(t, "mapping", entries[0].LoggerName)
	require.Len(t, entries[0].Context, 1)
	assert.Equal(t, "circuit", entries[0].Context[0].Key)
}

func TestNopLogger_NeverPanics(t *testing.T) {
	log := NewNopLogger()
	log.Debug("x")
	log.Info("x")
	log.Warn("x")
	log.Error("x")
	assert.Equal(t, log, log.With(String("a", "b")))
	assert.Equal(t, log, log.Named("sub"))
}

func TestDefault_SetAndGet(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	core, observed := observer.New(zapcore.InfoLevel)
	SetDefault(NewLoggerFromCore(core))
	Default().Info("via default")
	assert.Equal(t, 1, observed.Len())

	// nil is ignored.
	SetDefault(nil)
	assert.NotNil(t, Default())
}
