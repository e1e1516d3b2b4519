package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/domino14/ninuki/move"
	"github.com/domino14/ninuki/policy"
)

// Defaults for a fresh engine.
const (
	DefaultBoardSize = 7
	DefaultTimeLimit = 1
	MinTimeLimit     = 1
	MaxTimeLimit     = 100
)

// Config is the engine configuration. Values are read, in increasing
// precedence, from defaults, an optional ninuki.yaml in the working
// directory, and NINUKI_* environment variables.
type Config struct {
	BoardSize   int    `mapstructure:"boardsize"`
	TimeLimit   int    `mapstructure:"timelimit"`
	Policy      string `mapstructure:"policy"`
	Simulations int    `mapstructure:"simulations"`
	Debug       bool   `mapstructure:"debug"`
}

// Load reads the configuration. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("boardsize", DefaultBoardSize)
	v.SetDefault("timelimit", DefaultTimeLimit)
	v.SetDefault("policy", policy.RuleBased)
	v.SetDefault("simulations", policy.DefaultTrials)
	v.SetDefault("debug", false)

	v.SetEnvPrefix("ninuki")
	v.AutomaticEnv()

	v.SetConfigName("ninuki")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BoardSize < 2 || c.BoardSize > move.MaxBoardSize {
		return fmt.Errorf("boardsize must be in 2..%d, got %d", move.MaxBoardSize, c.BoardSize)
	}
	if c.TimeLimit < MinTimeLimit || c.TimeLimit > MaxTimeLimit {
		return fmt.Errorf("timelimit must be in %d..%d, got %d",
			MinTimeLimit, MaxTimeLimit, c.TimeLimit)
	}
	if c.Policy != policy.RuleBased && c.Policy != policy.Random {
		return fmt.Errorf("%w: %q", policy.ErrInvalidPolicy, c.Policy)
	}
	if c.Simulations < 1 {
		return fmt.Errorf("simulations must be positive, got %d", c.Simulations)
	}
	return nil
}
