// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/bookmarket/internal/cache"
	"github.com/tomtom215/bookmarket/internal/models"
	"github.com/tomtom215/bookmarket/internal/pricing"
)

func newPriceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Quote a second-hand price for a book",
		Long: `Train the fallback price model and quote one book. Without --offline the
market lookup runs first; GOOGLE_BOOKS_API_KEY is used when set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.PriceRequest{}
			req.Title, _ = cmd.Flags().GetString("title")
			req.Author, _ = cmd.Flags().GetString("author")
			req.Genre, _ = cmd.Flags().GetString("genre")
			req.Condition, _ = cmd.Flags().GetString("condition")
			offline, _ := cmd.Flags().GetBool("offline")
			trees, _ := cmd.Flags().GetInt("trees")

			modelCfg := pricing.DefaultModelConfig()
			modelCfg.Forest.Trees = trees
			model, err := pricing.TrainPriceModel(cmd.Context(), modelCfg)
			if err != nil {
				return err
			}

			var market pricing.MarketLookup
			if !offline {
				mem := cache.New(time.Hour)
				defer mem.Close()
				market = pricing.NewMarketClient(pricing.MarketConfig{
					APIKey: os.Getenv("GOOGLE_BOOKS_API_KEY"),
				}, cache.NewTiered[pricing.LookupResult](mem, nil, time.Hour))
			}

			quote := pricing.NewEstimator(market, model).Quote(cmd.Context(), req)
			if err := writeJSON(cmd.OutOrStdout(), quote); err != nil {
				return fmt.Errorf("write quote: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("title", "", "Book title")
	cmd.Flags().String("author", "", "Book author")
	cmd.Flags().String("genre", "", "Book genre")
	cmd.Flags().String("condition", "Good", "Book condition")
	cmd.Flags().Bool("offline", false, "Skip the market lookup")
	cmd.Flags().Int("trees", pricing.DefaultForestConfig().Trees, "Trees in the fallback model")
	return cmd
}
