package cell

import "log/slog"

// Option configures a Cell.
type Option[T any] func(*Cell[T])

// WithEqual sets the equality used to decide whether a write changed the
// value. It is useful for types where the default reference semantics are
// wrong, e.g. slices that should compare element-wise.
func WithEqual[T any](fn func(a, b T) bool) Option[T] {
	return func(c *Cell[T]) {
		if fn != nil {
			c.equal = fn
		}
	}
}

// WithLogger sets the logger used to report panicking listeners.
// Defaults to slog.Default().
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(c *Cell[T]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithName labels the cell in log output.
func WithName[T any](name string) Option[T] {
	return func(c *Cell[T]) {
		c.name = name
	}
}
