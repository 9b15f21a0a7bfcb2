// Package config loads the run configuration of the command-line drivers.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that override the
// configuration, e.g. HEARTHNASH_NUM_MATCHES.
const EnvPrefix = "HEARTHNASH"

type Config struct {
	NumMatches int      `mapstructure:"num_matches"`
	Seed       int64    `mapstructure:"seed"`
	Workers    int      `mapstructure:"workers"`
	MetaType   int      `mapstructure:"meta_type"`
	Formats    []string `mapstructure:"formats"`
	Metrics    []string `mapstructure:"metrics"`
	CacheSize  int      `mapstructure:"cache_size"`
	Verify     bool     `mapstructure:"verify"`
}

var defaults = map[string]interface{}{
	"num_matches": 100,
	"seed":        1,
	"workers":     4,
	"meta_type":   0,
	"formats":     []string{},
	"metrics":     []string{"match_length", "skill_sensitivity_wide", "skill_sensitivity_tall"},
	"cache_size":  1024,
	"verify":      false,
}

// Setup reads the configuration file at cfgPath, if one is given, and
// applies environment overrides on top of it.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", cfgPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration describes a run that can be done.
func (c *Config) Validate() error {
	if c.NumMatches <= 0 {
		return errors.Errorf("num_matches must be positive, got %d", c.NumMatches)
	}

	if c.Workers <= 0 {
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}

	if c.CacheSize <= 0 {
		return errors.Errorf("cache_size must be positive, got %d", c.CacheSize)
	}

	return nil
}
