package main

import (
	"github.com/spf13/cobra"

	"docindex/internal/config"
	"docindex/internal/pipeline"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the extracted corpus and per-record documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		return pipeline.Clean(cfg)
	},
}
