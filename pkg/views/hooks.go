// Package views renders the catalog pages from bound loadables.
//
// Each page takes a binding.Scope and reads its data through the Use*
// hooks, so the same code drives a one-shot HTTP render, a live websocket
// session and the terminal browser. A page never blocks: while data is
// pending it renders a loading indicator and the surface re-renders when
// the scope refreshes.
package views

import (
	"context"
	"log/slog"

	"github.com/vango-dev/patterns/pkg/binding"
	"github.com/vango-dev/patterns/pkg/catalog"
	"github.com/vango-dev/patterns/pkg/loadable"
	"github.com/vango-dev/patterns/pkg/loop"
)

// Env carries the collaborators shared by every page.
type Env struct {
	// Catalog is the pattern data source.
	Catalog catalog.Service

	// Dispatcher runs loadable continuations. Nil runs them on the
	// producer goroutine.
	Dispatcher loop.Dispatcher

	// Observer is told about settled loads, typically for metrics.
	Observer loadable.Observer

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func (e Env) options(name string) []loadable.Option {
	return []loadable.Option{
		loadable.WithName(name),
		loadable.WithDispatcher(e.Dispatcher),
		loadable.WithObserver(e.Observer),
		loadable.WithLogger(e.Logger),
	}
}

// UsePatterns binds a loadable of every pattern in declaration order.
func UsePatterns(ctx context.Context, s *binding.Scope, env Env) *loadable.Loadable[[]catalog.Pattern] {
	return binding.Use(s, func() *loadable.Loadable[[]catalog.Pattern] {
		return loadable.New[[]catalog.Pattern](ctx, env.Catalog.All, nil, env.options("patterns.all")...)
	})
}

// UseGroups binds a loadable of the patterns grouped by category.
func UseGroups(ctx context.Context, s *binding.Scope, env Env) *loadable.Loadable[catalog.Groups] {
	return binding.Use(s, func() *loadable.Loadable[catalog.Groups] {
		return loadable.New[catalog.Groups](ctx, func(ctx context.Context) (catalog.Groups, error) {
			all, err := env.Catalog.All(ctx)
			if err != nil {
				return nil, err
			}
			return catalog.GroupByCategory(all), nil
		}, nil, env.options("patterns.groups")...)
	})
}

// UsePattern binds a loadable of the pattern with the given id. A new id
// replaces the previous loadable.
func UsePattern(ctx context.Context, s *binding.Scope, env Env, id string) *loadable.Loadable[catalog.Pattern] {
	return binding.Use(s, func() *loadable.Loadable[catalog.Pattern] {
		return loadable.New(ctx, func(ctx context.Context) (catalog.Pattern, error) {
			return env.Catalog.Get(ctx, id)
		}, catalog.Pattern{}, env.options("pattern.get")...)
	}, id)
}
