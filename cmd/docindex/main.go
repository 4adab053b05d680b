// Package main provides the docindex CLI.
//
// docindex builds a flat, queryable index over a tree of hierarchical
// API documentation records: it downloads the corpus, resolves
// inheritance so every record carries its full effective definition,
// and emits one JSONL entry per class overview and per member.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "docindex",
	Short: "Build a flat searchable index from hierarchical API documentation",
	Long: `docindex ingests a tree of YAML documentation records, resolves
inheritance so every class carries everything it inherits from its
ancestors, and emits a flat JSONL index of every class and member.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(cleanCmd)

	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
