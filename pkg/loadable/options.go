package loadable

import (
	"log/slog"
	"time"

	"github.com/vango-dev/patterns/pkg/loop"
)

// Observer is told when a Loadable settles. Metrics collectors implement it.
type Observer interface {
	Settled(name string, status Status, elapsed time.Duration)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(name string, status Status, elapsed time.Duration)

// Settled implements Observer.
func (f ObserverFunc) Settled(name string, status Status, elapsed time.Duration) {
	f(name, status, elapsed)
}

// Option configures a Loadable.
type Option func(*config)

type config struct {
	name       string
	dispatcher loop.Dispatcher
	observer   Observer
	logger     *slog.Logger
}

func defaultConfig() config {
	return config{
		name:       "loadable",
		dispatcher: loop.Immediate,
		logger:     slog.Default(),
	}
}

// WithName labels the Loadable in logs and metrics.
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithDispatcher sets where the settle continuation runs. Defaults to
// loop.Immediate, i.e. the producer goroutine.
func WithDispatcher(d loop.Dispatcher) Option {
	return func(c *config) {
		if d != nil {
			c.dispatcher = d
		}
	}
}

// WithObserver registers an Observer for the settle event.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
