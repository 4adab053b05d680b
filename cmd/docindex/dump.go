package main

import (
	"fmt"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"docindex/internal/config"
	"docindex/internal/diagnostic"
	"docindex/internal/resolve"
	"docindex/internal/store"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <record-name>",
	Short: "Print the fully resolved view of one record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var diags diagnostic.Diagnostics

		st, err := store.Load(cfg.DocsRoot(), &diags)
		if err != nil {
			return err
		}

		rec := st.ByName(args[0])
		if rec == nil {
			return fmt.Errorf("no record named %q", args[0])
		}

		view := resolve.NewResolver(st.ByName, &diags).Resolve(rec)

		raw, _ := cmd.Flags().GetBool("raw")
		if raw {
			view = rec.Body
		}

		spew.Dump(view)

		for _, w := range diags.Warnings {
			slog.Debug("diagnostic", "detail", w.String())
		}

		return nil
	},
}

func init() {
	dumpCmd.Flags().Bool("raw", false, "dump the record body without resolving inheritance")
}
