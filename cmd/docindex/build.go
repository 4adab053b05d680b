package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"docindex/internal/config"
	"docindex/internal/fetch"
	"docindex/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Download the corpus, resolve inheritance and write the index",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keep, _ := cmd.Flags().GetBool("keep")

		if pipeline.DatasetExists(cfg) {
			rebuild := cfg.ForceRebuild

			switch {
			case cfg.ForceRebuild:
				slog.Info("existing dataset found, rebuilding (force_rebuild set)")
			case cfg.NonInteractive:
				slog.Info("existing dataset found, keeping it (non_interactive set)")
			default:
				rebuild = askYesNo("Existing dataset found. Rebuild?", false)
			}

			if !rebuild {
				fmt.Println("Using existing dataset.")
				return nil
			}

			for _, p := range []string{cfg.GeneralIndexPath(), cfg.PropertiesIndexPath()} {
				if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("removing stale index %s: %w", p, err)
				}
			}
		}

		if cfg.SkipDownload {
			slog.Info("skip_download set, using local corpus", "dir", cfg.LocalRepoDir)
		} else {
			if err := fetch.DownloadAndExtract(cmd.Context(), cfg.RepoZipURL, cfg.LocalRepoDir); err != nil {
				return err
			}
		}

		res, err := pipeline.Run(cfg)
		if err != nil {
			return err
		}

		fmt.Printf("Wrote %d record documents, %d index entries (%d properties).\n",
			res.RecordsWritten, res.GeneralEntries, res.PropertyEntries)

		if res.NavMissing > 0 {
			fmt.Printf("%d navigation entries had no matching record.\n", res.NavMissing)
		}

		for _, w := range res.Diags.Warnings {
			slog.Debug("diagnostic", "detail", w.String())
		}

		if !keep {
			return pipeline.Clean(cfg)
		}

		return nil
	},
}

func init() {
	buildCmd.Flags().Bool("keep", false, "keep the extracted corpus and per-record documents")
}

func askYesNo(prompt string, def bool) bool {
	suffix := " [y/N]: "
	if def {
		suffix = " [Y/n]: "
	}

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print(prompt + suffix)

		line, err := reader.ReadString('\n')
		if err != nil {
			return def
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}

		fmt.Println("Please answer y or n.")
	}
}
