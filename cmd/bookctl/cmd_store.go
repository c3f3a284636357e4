// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/bookmarket/internal/catalog"
)

func newStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the catalog database",
	}
	cmd.AddCommand(newStoreSeedCmd())
	return cmd
}

func newStoreSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the catalog with the synthetic catalog",
		Long: `Create the schema if needed and replace all books and interactions with
the synthetic catalog: 100 books and 20 users.

Examples:
  bookctl store seed --driver duckdb --dsn books.duckdb
  bookctl store seed --driver sqlite --dsn books.db --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			driver, _ := cmd.Flags().GetString("driver")
			dsn, _ := cmd.Flags().GetString("dsn")
			seed, _ := cmd.Flags().GetInt64("seed")

			ctx := cmd.Context()
			store, err := catalog.Open(ctx, driver, dsn)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			books, interactions := catalog.Synthetic(seed)
			if err := store.Seed(ctx, books, interactions); err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d books and %d interactions into %s (%s)\n",
				len(books), len(interactions), dsn, driver)
			return nil
		},
	}
	cmd.Flags().String("driver", catalog.DriverDuckDB, "Database driver: duckdb or sqlite")
	cmd.Flags().String("dsn", "", "Database file")
	cmd.Flags().Int64("seed", catalog.DefaultSyntheticSeed, "Seed for the synthetic catalog")
	_ = cmd.MarkFlagRequired("dsn")
	return cmd
}
