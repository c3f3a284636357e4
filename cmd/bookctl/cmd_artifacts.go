// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/bookmarket/internal/artifacts"
)

func newArtifactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "Generate or inspect collaborative filtering artifacts",
	}
	cmd.AddCommand(newArtifactsGenerateCmd(), newArtifactsInspectCmd())
	return cmd
}

func newArtifactsGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the reference artifact bundle",
		Long: `Write books.json, popular.json, pt.json and similarity_scores.json for
the reference catalog of 20 classics. Existing files are overwritten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			seed, _ := cmd.Flags().GetInt64("seed")

			bundle := artifacts.Reference(seed)
			if err := artifacts.Write(dir, bundle); err != nil {
				return fmt.Errorf("write artifacts: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d titles to %s\n", bundle.Size(), dir)
			return nil
		},
	}
	cmd.Flags().String("dir", "./artifacts", "Artifact directory")
	cmd.Flags().Int64("seed", artifacts.DefaultSeed, "Seed for the pivot ratings")
	return cmd
}

func newArtifactsInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Load an artifact bundle and describe it",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			format, _ := cmd.Flags().GetString("output")

			bundle, err := artifacts.Load(dir)
			if err != nil {
				return err
			}
			summary := artifacts.Summarize(bundle)
			return writeOutput(cmd.OutOrStdout(), format, summary, func(w io.Writer) error {
				_, err := fmt.Fprintf(w,
					"Books:           %d\nPopular rows:    %d\nMatrix:          %dx%d\nPivot users:     %d\nSample titles:   %s\nPopular columns: %s\n",
					summary.Books, summary.PopularRows, summary.MatrixSize, summary.MatrixSize, summary.PivotUsers,
					strings.Join(summary.SampleTitles, "; "), strings.Join(summary.PopularColumns, ", "))
				if err == nil && len(summary.Unresolved) > 0 {
					_, err = fmt.Fprintf(w, "Unresolved:      %s\n", strings.Join(summary.Unresolved, ", "))
				}
				return err
			})
		},
	}
	cmd.Flags().String("dir", "./artifacts", "Artifact directory")
	cmd.Flags().StringP("output", "o", "text", "Output format: text, json or yaml")
	return cmd
}
