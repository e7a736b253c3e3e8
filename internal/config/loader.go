package config

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
)

const envPrefix = "FIRECIRCUIT"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeConfigInvalid, "unmarshal configuration")
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeConfigInvalid, "validate configuration")
	}
	return cfg, nil
}

// Load reads the YAML file at path, overlays FIRECIRCUIT_* environment
// variables, applies defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeConfigInvalid, "read configuration file")
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a configuration from environment variables and
// defaults alone.  Useful for containerized deployments without a
// config file.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

// MustLoad is Load for program startup paths where a broken
// configuration is unrecoverable.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Watch reloads the file at path whenever it changes and hands each
// valid result to onChange.  Reloads that fail validation are dropped
// so a half-written file never replaces a good configuration.
func Watch(path string, onChange func(*Config)) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeConfigInvalid, "read configuration file")
	}
	cfg, err := unmarshalAndFinalize(v)
	if err != nil {
		return nil, err
	}
	v.OnConfigChange(func(fsnotify.Event) {
		next, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(next)
	})
	v.WatchConfig()
	return cfg, nil
}
