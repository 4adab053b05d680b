package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"docindex/internal/config"
	"docindex/internal/diagnostic"
	"docindex/internal/emit"
	"docindex/internal/enrich"
	"docindex/internal/resolve"
	"docindex/internal/store"
)

var describeCmd = &cobra.Command{
	Use:   "describe <record-name> [member-name]",
	Short: "Generate member descriptions via the configured LLM",
	Long: `describe resolves one record and asks the configured
OpenAI-compatible endpoint for a short description of the named member,
or of every named member when no member is given.`,
	Args: cobra.RangeArgs(1, 2),
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
		classText := enrich.YAMLToText(view)

		writer := enrich.NewMemberDocWriter(enrich.Options{
			BaseURL: cfg.LLMBaseURL,
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.LLMModel,
		})

		if len(args) == 2 {
			text, err := writer.Describe(cmd.Context(), rec.Name, args[1], classText)
			if err != nil {
				return err
			}

			fmt.Println(text)

			return nil
		}

		names := memberNames(view)
		if len(names) == 0 {
			return fmt.Errorf("record %q has no named members", rec.Name)
		}

		docs, err := writer.DescribeAll(cmd.Context(), rec.Name, classText, names)
		if err != nil {
			return err
		}

		for _, name := range names {
			fmt.Printf("%s: %s\n", name, docs[name])
		}

		return nil
	},
}

// memberNames collects every named member across the known member
// groups of a resolved view, sorted and deduplicated.
func memberNames(view map[string]any) []string {
	seen := make(map[string]struct{})

	for _, group := range emit.MemberGroups {
		members, ok := view[group.Key].([]any)
		if !ok {
			continue
		}

		for _, raw := range members {
			member, ok := raw.(map[string]any)
			if !ok {
				continue
			}

			if name, ok := member["name"].(string); ok && name != "" {
				seen[name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
