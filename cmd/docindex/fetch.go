package main

import (
	"github.com/spf13/cobra"

	"docindex/internal/config"
	"docindex/internal/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and extract the documentation corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		return fetch.DownloadAndExtract(cmd.Context(), cfg.RepoZipURL, cfg.LocalRepoDir)
	},
}
