// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"net"
	"strconv"
)

// DefaultPort is used when neither the config file nor the environment set
// a usable port.
const DefaultPort = 5000

const (
	minPort = 1
	maxPort = 65535
)

// Config contains process configuration.
type Config struct {
	// Port is the TCP port the HTTP listener binds to.
	Port int `koanf:"port"`

	// Host is the bind host; empty listens on all interfaces.
	Host string `koanf:"host"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// LogFile, when set, tees logs into a size-rotated file.
	LogFile       string `koanf:"log_file"`
	LogMaxSizeMB  int    `koanf:"log_max_size_mb"`
	LogMaxBackups int    `koanf:"log_max_backups"`
	LogMaxAgeDays int    `koanf:"log_max_age_days"`

	// CORSAllowedOrigin is sent as Access-Control-Allow-Origin.
	CORSAllowedOrigin string `koanf:"cors_allowed_origin"`

	// MaxBodyBytes bounds the POST /data request body.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// MetricsPath is where Prometheus metrics are exposed; empty disables it.
	MetricsPath string `koanf:"metrics_path"`

	// MetricsNamespace prefixes every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsLabels are constant labels added to every series. File only.
	MetricsLabels map[string]string `koanf:"metrics_labels"`

	// MetricsBucketsMs overrides the request latency buckets. File only.
	MetricsBucketsMs []float64 `koanf:"metrics_buckets_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		Port:              DefaultPort,
		Host:              "",
		LogLevel:          "info",
		LogFormat:         "text",
		LogMaxSizeMB:      10,
		LogMaxBackups:     5,
		LogMaxAgeDays:     30,
		CORSAllowedOrigin: "*",
		MaxBodyBytes:      1 << 20,
		MetricsPath:       "/metrics",
		MetricsNamespace:  "textcase",
	}
}

// Addr returns the listen address, e.g. ":5000".
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// validPort reports whether p can be bound as a TCP port.
func validPort(p int) bool {
	return p >= minPort && p <= maxPort
}
