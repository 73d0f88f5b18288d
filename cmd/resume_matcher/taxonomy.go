package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/taxonomy"
)

// taxonomySummary is the JSON form of taxonomy validate.
type taxonomySummary struct {
	Source     string         `json:"source"`
	Version    string         `json:"version"`
	Skills     int            `json:"skills"`
	Categories map[string]int `json:"categories"`
}

func newTaxonomyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "Inspect and validate skill taxonomies",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [source]",
		Short: "Validate a taxonomy document and summarize it",
		Long: `Load a taxonomy from a file path, s3://bucket/key URI or "embedded",
check it against the schema and alias rules, and print a summary.
Without an argument the configured --taxonomy source is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.cfg.Taxonomy.Source = args[0]
			}
			tax, err := a.loadTaxonomy(cmd.Context())
			if err != nil {
				return err
			}

			summary := taxonomySummary{
				Source:     a.cfg.Taxonomy.Source,
				Version:    tax.Version(),
				Skills:     tax.Len(),
				Categories: categoryCounts(tax),
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Taxonomy %s is valid\n", summary.Source)
			fmt.Fprintf(out, "  Version: %s\n", summary.Version)
			fmt.Fprintf(out, "  Skills:  %d\n", summary.Skills)
			names := make([]string, 0, len(summary.Categories))
			for name := range summary.Categories {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "    %-20s %d\n", name, summary.Categories[name])
			}
			return nil
		},
	})
	return cmd
}

func categoryCounts(tax *taxonomy.Taxonomy) map[string]int {
	counts := make(map[string]int)
	for _, e := range tax.Entries() {
		counts[e.Category]++
	}
	return counts
}
