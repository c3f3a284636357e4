// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/bookmarket/internal/artifacts"
	"github.com/tomtom215/bookmarket/internal/catalog"
	"github.com/tomtom215/bookmarket/internal/logging"
	"github.com/tomtom215/bookmarket/internal/recommend"
)

// recommendOutput is what bookctl recommend prints.
type recommendOutput struct {
	ServedBy string `json:"served_by"`
	Outcome  string `json:"outcome"`
	Items    any    `json:"items"`
}

func newRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Run the recommendation engine once",
		Long: `Load the artifacts and catalog the server would load and print one
recommendation list. Without --driver the synthetic catalog is used.

Examples:
  bookctl recommend --type trending --count 3
  bookctl recommend --type content --user 4
  bookctl recommend --type collaborative --title "The Great Gatsby"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("type")
			userID, _ := cmd.Flags().GetInt64("user")
			title, _ := cmd.Flags().GetString("title")
			count, _ := cmd.Flags().GetInt("count")
			dir, _ := cmd.Flags().GetString("artifacts")
			driver, _ := cmd.Flags().GetString("driver")
			dsn, _ := cmd.Flags().GetString("dsn")
			ctx := cmd.Context()

			var store catalog.BookStore
			if driver != "" {
				s, err := catalog.Open(ctx, driver, dsn)
				if err != nil {
					return err
				}
				defer func() { _ = s.Close() }()
				store = s
			}

			bundle, err := artifacts.Load(dir)
			if err != nil {
				logging.Warn().Err(err).Msg("Artifacts unavailable, collaborative and trending will fall back")
			}

			engine := recommend.NewEngine(bundle, catalog.NewLoader(store, catalog.DefaultSyntheticSeed).Load(ctx))
			res := engine.Recommend(ctx, recommend.Request{
				Strategy:  recommend.ParseStrategy(kind),
				UserID:    userID,
				BookTitle: title,
				Count:     count,
			})
			return writeJSON(cmd.OutOrStdout(), recommendOutput{
				ServedBy: string(res.Strategy),
				Outcome:  res.Outcome.String(),
				Items:    res.Items,
			})
		},
	}
	cmd.Flags().String("type", "content", "Strategy: content, collaborative or trending")
	cmd.Flags().Int64("user", 1, "User id for content recommendations")
	cmd.Flags().String("title", "", "Seed title for collaborative recommendations")
	cmd.Flags().Int("count", 5, "Number of recommendations")
	cmd.Flags().String("artifacts", "./artifacts", "Artifact directory")
	cmd.Flags().String("driver", "", "Catalog database driver (duckdb or sqlite)")
	cmd.Flags().String("dsn", "", "Catalog database file")
	return cmd
}
