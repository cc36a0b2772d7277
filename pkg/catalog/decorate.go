package catalog

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Delayed wraps svc so every query waits d first, simulating a slow
// backend. The wait is abandoned when ctx is done.
func Delayed(svc Service, d time.Duration) Service {
	if d <= 0 {
		return svc
	}
	return &delayed{next: svc, d: d}
}

type delayed struct {
	next Service
	d    time.Duration
}

func (s *delayed) wait(ctx context.Context) error {
	t := time.NewTimer(s.d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *delayed) All(ctx context.Context) ([]Pattern, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.next.All(ctx)
}

func (s *delayed) Get(ctx context.Context, id string) (Pattern, error) {
	if err := s.wait(ctx); err != nil {
		return Pattern{}, err
	}
	return s.next.Get(ctx, id)
}

const tracerName = "github.com/vango-dev/patterns/pkg/catalog"

// Traced wraps svc so every query runs in a span. A nil tracer uses the
// global provider.
func Traced(svc Service, tracer trace.Tracer) Service {
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &traced{next: svc, tracer: tracer}
}

type traced struct {
	next   Service
	tracer trace.Tracer
}

func (s *traced) All(ctx context.Context) ([]Pattern, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.All")
	defer span.End()

	patterns, err := s.next.All(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("catalog.patterns", len(patterns)))
	return patterns, nil
}

func (s *traced) Get(ctx context.Context, id string) (Pattern, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Get",
		trace.WithAttributes(attribute.String("pattern.id", id)))
	defer span.End()

	p, err := s.next.Get(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		// A miss is an answer, not a failure of the source.
		span.SetAttributes(attribute.Bool("pattern.found", false))
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	default:
		span.SetAttributes(
			attribute.Bool("pattern.found", true),
			attribute.String("pattern.category", p.Category.String()),
		)
	}
	return p, err
}
