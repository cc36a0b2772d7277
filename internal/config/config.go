package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vango-dev/patterns/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "patterns.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PATTERNS_"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultRenderTimeout bounds how long a server render waits for data.
	DefaultRenderTimeout = 200 * time.Millisecond

	// DefaultHeartbeat is the live session ping interval.
	DefaultHeartbeat = 30 * time.Second

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"

	// DefaultServiceName is the OpenTelemetry service name.
	DefaultServiceName = "patterns"
)

// Config represents the complete patterns.json configuration.
type Config struct {
	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server" envPrefix:"SERVER_"`

	// Catalog contains pattern data source configuration.
	Catalog CatalogConfig `json:"catalog" envPrefix:"CATALOG_"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics" envPrefix:"METRICS_"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing" envPrefix:"TRACING_"`

	// Log contains logging configuration.
	Log LogConfig `json:"log" envPrefix:"LOG_"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" env:"HOST"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" env:"PORT"`

	// RenderTimeout is how long a page render waits for pending data
	// before shipping the loading state (e.g., "200ms").
	RenderTimeout Duration `json:"renderTimeout,omitempty" env:"RENDER_TIMEOUT"`

	// Heartbeat is the live websocket ping interval.
	Heartbeat Duration `json:"heartbeat,omitempty" env:"HEARTBEAT"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout Duration `json:"shutdownTimeout,omitempty" env:"SHUTDOWN_TIMEOUT"`

	// Live enables the /live websocket surface.
	Live *bool `json:"live,omitempty" env:"LIVE"`
}

// CatalogConfig contains data source settings.
type CatalogConfig struct {
	// File is an optional YAML catalog. Empty uses the built-in patterns.
	File string `json:"file,omitempty" env:"FILE"`

	// Latency delays every catalog query, simulating a remote source.
	Latency Duration `json:"latency,omitempty" env:"LATENCY"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes metrics on Path.
	Enabled bool `json:"enabled,omitempty" env:"ENABLED"`

	// Path is the metrics endpoint.
	Path string `json:"path,omitempty" env:"PATH"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Endpoint is the OTLP/HTTP collector endpoint, e.g.
	// "localhost:4318". Empty disables export.
	Endpoint string `json:"endpoint,omitempty" env:"ENDPOINT"`

	// Insecure disables TLS to the collector.
	Insecure bool `json:"insecure,omitempty" env:"INSECURE"`

	// ServiceName is reported as service.name.
	ServiceName string `json:"serviceName,omitempty" env:"SERVICE_NAME"`

	// SampleRatio is the fraction of traces sampled, 0 to 1.
	SampleRatio *float64 `json:"sampleRatio,omitempty" env:"SAMPLE_RATIO"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" env:"LEVEL"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty" env:"FORMAT"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Resolve builds the effective configuration: defaults, then the file at
// path (or patterns.json in the working directory when path is empty and
// the file exists), then PATTERNS_* environment overrides. The result is
// validated.
func Resolve(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch {
	case path != "":
		cfg, err = LoadFile(path)
	case fileExists(ConfigFileName):
		cfg, err = LoadFile(ConfigFileName)
	default:
		cfg = New()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration from the specified directory.
// It looks for patterns.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("P021").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path)).
				WithSuggestion("Run 'patterns config init' to create one, or omit --config to use defaults").
				Wrap(err)
		}
		return nil, errors.New("P021").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("P021").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// ApplyEnv overrides fields from PATTERNS_* environment variables, e.g.
// PATTERNS_SERVER_PORT or PATTERNS_CATALOG_LATENCY.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(env.Options{Prefix: EnvPrefix})
}

func (c *Config) applyEnv(opts env.Options) error {
	if err := env.ParseWithOptions(c, opts); err != nil {
		return errors.New("P022").
			WithDetail(err.Error()).
			WithSuggestion("Durations use Go syntax such as 250ms or 30s").
			Wrap(err)
	}
	return nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("P021").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("P021").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.RenderTimeout == 0 {
		c.Server.RenderTimeout = Duration(DefaultRenderTimeout)
	}
	if c.Server.Heartbeat == 0 {
		c.Server.Heartbeat = Duration(DefaultHeartbeat)
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(DefaultShutdownTimeout)
	}
	if c.Server.Live == nil {
		live := true
		c.Server.Live = &live
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = DefaultServiceName
	}
	if c.Tracing.SampleRatio == nil {
		ratio := 1.0
		c.Tracing.SampleRatio = &ratio
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid. All problems are
// reported in one error.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		problems = append(problems, "server.port must be between 0 and 65535")
	}
	if c.Server.RenderTimeout < 0 {
		problems = append(problems, "server.renderTimeout must not be negative")
	}
	if c.Server.Heartbeat <= 0 {
		problems = append(problems, "server.heartbeat must be positive")
	}
	if c.Catalog.Latency < 0 {
		problems = append(problems, "catalog.latency must not be negative")
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}
	if r := c.Tracing.SampleRatio; r != nil && (*r < 0 || *r > 1) {
		problems = append(problems, "tracing.sampleRatio must be between 0 and 1")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		problems = append(problems, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}

	if len(problems) > 0 {
		return errors.New("P020").WithDetail(strings.Join(problems, "; "))
	}
	return nil
}

// Address returns the host:port listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the base URL of the server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// LiveEnabled reports whether the websocket surface is on.
func (c *Config) LiveEnabled() bool {
	return c.Server.Live == nil || *c.Server.Live
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q: want debug, info, warn or error", s)
	}
	return level, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
