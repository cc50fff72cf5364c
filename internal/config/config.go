package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/psantana5/fieldbench/internal/render"
	"github.com/psantana5/fieldbench/internal/workload"
)

// EnvPrefix prefixes every environment override, e.g. FIELDBENCH_ITERATIONS
const EnvPrefix = "FIELDBENCH"

// Config is the resolved harness configuration
type Config struct {
	Iterations    int      `mapstructure:"iterations" yaml:"iterations"`
	Repetitions   int      `mapstructure:"repetitions" yaml:"repetitions"`
	Workloads     []string `mapstructure:"workloads" yaml:"workloads"`
	MaxAliasDepth int      `mapstructure:"max_alias_depth" yaml:"max_alias_depth"`
	Output        string   `mapstructure:"output" yaml:"output"`

	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing"`
	Serve   ServeConfig   `mapstructure:"serve" yaml:"serve"`
}

// LogConfig selects level and line format
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // text or json
}

// TracingConfig controls the OTLP exporter
type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
}

// ServeConfig controls the live HTTP view
type ServeConfig struct {
	Addr    string `mapstructure:"addr" yaml:"addr"`
	Refresh int    `mapstructure:"refresh" yaml:"refresh"` // page refresh, seconds
}

// SetDefaults registers every key with its default so env overrides and
// Unmarshal see the full key set.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("iterations", 1000000)
	v.SetDefault("repetitions", 5)
	v.SetDefault("workloads", []string{})
	v.SetDefault("max_alias_depth", workload.MaxAliasDepth)
	v.SetDefault("output", string(render.FormatTable))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4318")
	v.SetDefault("serve.addr", ":8089")
	v.SetDefault("serve.refresh", 2)
}

// BindEnv enables FIELDBENCH_* overrides, nested keys use underscores
// (FIELDBENCH_LOG_LEVEL).
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load resolves and validates the configuration held by v
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Workloads = splitList(cfg.Workloads)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and names
func (c Config) Validate() error {
	var errs []error
	if c.Iterations < 0 {
		errs = append(errs, fmt.Errorf("iterations must not be negative, got %d", c.Iterations))
	}
	if c.Repetitions < 1 {
		errs = append(errs, fmt.Errorf("repetitions must be at least 1, got %d", c.Repetitions))
	}
	if c.MaxAliasDepth < 0 || c.MaxAliasDepth > workload.MaxAliasDepth {
		errs = append(errs, fmt.Errorf("max_alias_depth must be between 0 and %d, got %d",
			workload.MaxAliasDepth, c.MaxAliasDepth))
	}
	if _, err := render.ParseFormat(c.Output); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Serve.Refresh < 0 {
		errs = append(errs, fmt.Errorf("serve.refresh must not be negative, got %d", c.Serve.Refresh))
	}
	return errors.Join(errs...)
}

// splitList accepts both YAML lists and a single comma separated string,
// which is what an env var such as FIELDBENCH_WORKLOADS=a,b yields.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
