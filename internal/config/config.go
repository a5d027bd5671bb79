// Package config provides configuration loading and validation for treebench.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrUnknownVariant       = errors.New("unknown tree variant")
	ErrInvalidKeys          = errors.New("key count must be positive")
	ErrUnknownOrder         = errors.New("unknown key order")
	ErrInvalidDeleteRatio   = errors.New("delete ratio must be within [0, 1]")
	ErrInvalidValidateEvery = errors.New("validate interval must not be negative")
	ErrInvalidLogLevel      = errors.New("invalid log level")
	ErrInvalidLogFormat     = errors.New("invalid log format")
)

// Default configuration values.
const (
	DefaultKeys          = 1000
	DefaultSeed          = 1
	DefaultOrder         = OrderRandom
	DefaultDeleteRatio   = 0.25
	DefaultValidateEvery = 100
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// Key orders understood by the workload generator.
const (
	OrderRandom     = "random"
	OrderAscending  = "ascending"
	OrderDescending = "descending"
)

// Variants lists the tree implementations treebench can drive, in the
// order they are reported.
var Variants = []string{"bst", "avl", "llrb"}

// Config holds all configuration for treebench.
type Config struct {
	Workload WorkloadConfig `mapstructure:"workload"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// WorkloadConfig describes the operations a run performs.
type WorkloadConfig struct {
	Variants      []string `mapstructure:"variants"`
	Order         string   `mapstructure:"order"`
	Script        string   `mapstructure:"script"`
	Keys          int      `mapstructure:"keys"`
	Seed          int64    `mapstructure:"seed"`
	DeleteRatio   float64  `mapstructure:"delete_ratio"`
	ValidateEvery int      `mapstructure:"validate_every"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig holds the prometheus endpoint configuration. An empty
// address disables the endpoint.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("treebench")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
	}

	viperCfg.SetEnvPrefix("TREEBENCH")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	config.Workload.Variants = ExpandVariants(config.Workload.Variants)

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("workload.variants", Variants)
	viperCfg.SetDefault("workload.keys", DefaultKeys)
	viperCfg.SetDefault("workload.seed", DefaultSeed)
	viperCfg.SetDefault("workload.order", DefaultOrder)
	viperCfg.SetDefault("workload.delete_ratio", DefaultDeleteRatio)
	viperCfg.SetDefault("workload.validate_every", DefaultValidateEvery)
	viperCfg.SetDefault("workload.script", "")

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	viperCfg.SetDefault("metrics.addr", "")
}

// ExpandVariants replaces "all" with every known variant and drops
// duplicates while keeping the first occurrence.
func ExpandVariants(names []string) []string {
	var out []string
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		expanded := []string{name}
		if name == "all" {
			expanded = Variants
		}
		for _, v := range expanded {
			if !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
	}
	return out
}

// Validate checks the configuration. It is exported so that command
// line overrides can be checked after they are applied.
func (c *Config) Validate() error {
	if len(c.Workload.Variants) == 0 {
		return fmt.Errorf("%w: none selected", ErrUnknownVariant)
	}
	for _, v := range c.Workload.Variants {
		if !slices.Contains(Variants, v) {
			return fmt.Errorf("%w: %q", ErrUnknownVariant, v)
		}
	}

	if c.Workload.Script == "" && c.Workload.Keys <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidKeys, c.Workload.Keys)
	}

	switch c.Workload.Order {
	case OrderRandom, OrderAscending, OrderDescending:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOrder, c.Workload.Order)
	}

	if c.Workload.DeleteRatio < 0 || c.Workload.DeleteRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidDeleteRatio, c.Workload.DeleteRatio)
	}

	if c.Workload.ValidateEvery < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidValidateEvery, c.Workload.ValidateEvery)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}
