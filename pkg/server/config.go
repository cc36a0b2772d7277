package server

import (
	"time"

	"github.com/vango-dev/patterns/internal/config"
)

// Config holds the server settings.
type Config struct {
	// Address is the listen address. Default: "localhost:8080".
	Address string

	// RenderTimeout bounds how long a page render waits for pending data.
	// Zero renders the first pass as is. Default: 200ms.
	RenderTimeout time.Duration

	// HeartbeatInterval is the time between live session pings.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// WriteTimeout bounds a single websocket write. Default: 10 seconds.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown. Default: 10 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout guards against slow clients. Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// Live enables the /live websocket surface.
	Live bool

	// MetricsPath serves Prometheus metrics when non-empty.
	MetricsPath string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:           "localhost:8080",
		RenderTimeout:     config.DefaultRenderTimeout,
		HeartbeatInterval: config.DefaultHeartbeat,
		WriteTimeout:      10 * time.Second,
		ShutdownTimeout:   config.DefaultShutdownTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		Live:              true,
	}
}

// ConfigFrom maps the file and environment configuration onto a Config.
func ConfigFrom(cfg *config.Config) Config {
	c := DefaultConfig()
	c.Address = cfg.Address()
	c.RenderTimeout = cfg.Server.RenderTimeout.Std()
	c.HeartbeatInterval = cfg.Server.Heartbeat.Std()
	c.ShutdownTimeout = cfg.Server.ShutdownTimeout.Std()
	c.Live = cfg.LiveEnabled()
	if cfg.Metrics.Enabled {
		c.MetricsPath = cfg.Metrics.Path
	}
	return c
}

// withDefaults fills in defaults for unset fields.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.RenderTimeout < 0 {
		c.RenderTimeout = 0
	}
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = d.HeartbeatInterval
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	return c
}
