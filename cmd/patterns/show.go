package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/patterns/internal/errors"
	"github.com/vango-dev/patterns/pkg/catalog"
	"github.com/vango-dev/patterns/pkg/loadable"
)

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one pattern",
		Long: `Show the description, diagram and quick reference of a pattern.

Examples:
  patterns show singleton
  patterns show observer`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("P060").
					WithDetail(fmt.Sprintf("show takes exactly one pattern id, got %d", len(args))).
					WithSuggestion("Run 'patterns list' to see the ids")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.catalog()
			if err != nil {
				return err
			}
			return runShow(cmd, svc, args[0])
		},
	}
}

func runShow(cmd *cobra.Command, svc catalog.Service, id string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pattern := loadable.New(ctx, func(ctx context.Context) (catalog.Pattern, error) {
		return svc.Get(ctx, id)
	}, catalog.Pattern{}, loadable.WithName("pattern.get"))
	all := loadable.New[[]catalog.Pattern](ctx, svc.All, nil, loadable.WithName("patterns.all"))
	defer pattern.Cancel()
	defer all.Cancel()

	r, err := pattern.Await(ctx)
	if err != nil {
		return errors.New("P003").Wrap(err)
	}
	// Siblings and suggestions are best effort.
	others, _ := all.Await(ctx)

	if r.IsErrored() {
		if missing, ok := catalog.IsNotFound(r.Err); ok {
			e := errors.New("P001").WithDetail(fmt.Sprintf("No pattern matches %q", missing))
			if guess, ok := catalog.Suggest(others.Value, missing); ok {
				e.WithSuggestion(fmt.Sprintf("Did you mean %q? Run 'patterns show %s'", guess.ID, guess.ID))
			}
			return e
		}
		return errors.New("P003").Wrap(r.Err)
	}

	fmt.Fprint(cmd.OutOrStdout(), renderPattern(r.Value, catalog.Siblings(others.Value, r.Value)))
	return nil
}
