package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/patterns/internal/errors"
	"github.com/vango-dev/patterns/pkg/catalog"
)

func listCmd(a *app) *cobra.Command {
	var (
		asJSON   bool
		category string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List patterns grouped by category",
		Long: `List every pattern in the catalog, grouped as creational,
structural and behavioral.

Examples:
  patterns list
  patterns list --category structural
  patterns list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.catalog()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			all, err := svc.All(ctx)
			if err != nil {
				return errors.New("P003").Wrap(err)
			}

			if category != "" {
				c, err := catalog.ParseCategory(category)
				if err != nil {
					return errors.New("P060").
						WithDetail(err.Error()).
						WithSuggestion("Use creational, structural or behavioral")
				}
				var filtered []catalog.Pattern
				for _, p := range all {
					if p.Category == c {
						filtered = append(filtered, p)
					}
				}
				all = filtered
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if all == nil {
					all = []catalog.Pattern{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(all)
			}

			if len(all) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("No patterns."))
				return nil
			}
			fmt.Fprint(out, renderGroups(catalog.GroupByCategory(all), ""))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of cards")
	cmd.Flags().StringVar(&category, "category", "", "Only list one category")

	return cmd
}
