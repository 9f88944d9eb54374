package config

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	EnvPrefix = "TEXTCASE_"
	EnvConfig = "TEXTCASE_CONFIG"
	EnvPort   = "PORT"
)

// metricNameRE is the Prometheus metric and label name syntax.
var metricNameRE = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// reservedLabels are the variable labels the service's collectors already use.
var reservedLabels = []string{"endpoint", "method", "status_code", "error_type", "outcome"}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if TEXTCASE_CONFIG is set
//  3. env (prefix TEXTCASE_)
//  4. PORT, when it holds a valid port number; otherwise it is ignored
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Environment variables: TEXTCASE_LOG_LEVEL, TEXTCASE_MAX_BODY_BYTES, ...
	// Map env keys like TEXTCASE_LOG_LEVEL -> log_level (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		if s == EnvConfig {
			return ""
		}
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	// PORT is the conventional platform variable. Values that are not a
	// usable port number leave the previous layer in place.
	portProvider := env.ProviderWithValue(EnvPort, ".", func(key, value string) (string, interface{}) {
		if key != EnvPort {
			return "", nil
		}
		p, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || !validPort(p) {
			return "", nil
		}
		return "port", p
	})
	if err := k.Load(portProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env %s: %w", ErrLoadConfig, EnvPort, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks invariants that the loaders cannot express.
func (c *Config) Validate() error {
	switch {
	case !validPort(c.Port):
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	case c.MetricsPath != "" && !strings.HasPrefix(c.MetricsPath, "/"):
		return fmt.Errorf("%w: metrics_path must start with /", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return c.validateMetrics()
}

func (c *Config) validateMetrics() error {
	if !metricNameRE.MatchString(c.MetricsNamespace) {
		return fmt.Errorf("%w: metrics_namespace %q is not a valid metric name", ErrInvalidConfig, c.MetricsNamespace)
	}
	for name := range c.MetricsLabels {
		if !metricNameRE.MatchString(name) || strings.HasPrefix(name, "__") || slices.Contains(reservedLabels, name) {
			return fmt.Errorf("%w: metrics_labels key %q is not usable", ErrInvalidConfig, name)
		}
	}
	for i, b := range c.MetricsBucketsMs {
		if b <= 0 || (i > 0 && b <= c.MetricsBucketsMs[i-1]) {
			return fmt.Errorf("%w: metrics_buckets_ms must be positive and strictly increasing", ErrInvalidConfig)
		}
	}
	return nil
}
