// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

// Command bookctl is the bookmarket operator tool. It generates and inspects
// collaborative artifacts, seeds catalog databases, and runs the pricing and
// recommendation engines without the HTTP server.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/bookmarket/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bookctl",
		Short: "Operate the bookmarket recommendation and pricing engine",
		Long: `bookctl manages the files and databases the bookmarket server reads,
and runs the engines locally for troubleshooting.

Examples:
  bookctl artifacts generate --dir ./artifacts
  bookctl store seed --driver duckdb --dsn books.duckdb
  bookctl price --title Dune --author "Frank Herbert" --offline
  bookctl recommend --type collaborative --title 1984`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			logging.Init(logging.Config{Level: level, Format: "console", Output: cmd.ErrOrStderr()})
		},
	}

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newArtifactsCmd(),
		newStoreCmd(),
		newPriceCmd(),
		newRecommendCmd(),
	)
	return rootCmd
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeOutput renders v in format. text falls back to textFn.
func writeOutput(w io.Writer, format string, v any, textFn func(io.Writer) error) error {
	switch format {
	case "json":
		return writeJSON(w, v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return textFn(w)
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}
