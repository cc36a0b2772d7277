package catalog

import (
	"context"
	"errors"
	"fmt"
)

// Service answers read-only pattern queries.
type Service interface {
	// All returns every pattern in declaration order.
	All(ctx context.Context) ([]Pattern, error)

	// Get returns the pattern with the given id or a *NotFoundError.
	Get(ctx context.Context, id string) (Pattern, error)
}

// ErrNotFound matches any *NotFoundError with errors.Is.
var ErrNotFound = errors.New("pattern not found")

// NotFoundError reports a lookup for an unknown pattern id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pattern with id %q not found", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) true.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound returns a *NotFoundError for id.
func NotFound(id string) error {
	return &NotFoundError{ID: id}
}

// IsNotFound reports whether err is a not-found failure and returns the id.
func IsNotFound(err error) (string, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.ID, true
	}
	return "", false
}

// Static serves a fixed list of patterns.
type Static struct {
	patterns []Pattern
	index    map[string]int
}

// NewStatic creates a Static service over a copy of patterns. When ids
// repeat, Get returns the first.
func NewStatic(patterns ...Pattern) *Static {
	s := &Static{
		patterns: append([]Pattern(nil), patterns...),
		index:    make(map[string]int, len(patterns)),
	}
	for i, p := range s.patterns {
		if _, dup := s.index[p.ID]; !dup {
			s.index[p.ID] = i
		}
	}
	return s
}

// All implements Service. The returned slice is a copy.
func (s *Static) All(ctx context.Context) ([]Pattern, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Pattern(nil), s.patterns...), nil
}

// Get implements Service.
func (s *Static) Get(ctx context.Context, id string) (Pattern, error) {
	if err := ctx.Err(); err != nil {
		return Pattern{}, err
	}
	i, ok := s.index[id]
	if !ok {
		return Pattern{}, NotFound(id)
	}
	return s.patterns[i], nil
}

// Len returns the number of patterns.
func (s *Static) Len() int {
	return len(s.patterns)
}
