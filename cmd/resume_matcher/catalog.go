package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/catalog"
	"github.com/jonathan/resume-matcher/internal/db"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate job catalogs and seed the catalog database",
	}
	cmd.AddCommand(newCatalogValidateCmd(a), newCatalogSeedCmd(a))
	return cmd
}

// loadCatalogFile reads path, or the embedded catalog when path is empty.
func loadCatalogFile(path string) ([]catalog.Job, error) {
	if path == "" {
		return catalog.Embedded()
	}
	return catalog.LoadFile(path)
}

func newCatalogValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a job catalog and resolve its skills against the taxonomy",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			jobs, err := loadCatalogFile(path)
			if err != nil {
				return err
			}
			engine, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}

			unresolved := make(map[string][]string)
			for _, job := range jobs {
				if _, missing := engine.ResolveSkills(job.RequiredSkills); len(missing) > 0 {
					unresolved[job.Key] = missing
				}
			}

			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"jobs":             len(jobs),
					"unresolved":       unresolved,
					"taxonomy_version": engine.Taxonomy().Version(),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog is valid: %d jobs\n", len(jobs))
			keys := make([]string, 0, len(unresolved))
			for key := range unresolved {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(out, "  %s: not in taxonomy %s: %s\n",
					key, engine.Taxonomy().Version(), strings.Join(unresolved[key], ", "))
			}
			return nil
		},
	}
}

func newCatalogSeedCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert a job catalog into the catalog_jobs table",
		Long:  `Create the catalog_jobs table if needed and upsert every job from --file, or the embedded catalog. Requires DATABASE_URL.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Database.URL == "" {
				return errors.New("database.url or DATABASE_URL is required")
			}
			jobs, err := loadCatalogFile(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			database, err := db.Connect(ctx, a.cfg.Database.URL)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.EnsureCatalogSchema(ctx); err != nil {
				return err
			}
			n, err := database.SeedCatalog(ctx, jobs)
			if err != nil {
				return err
			}
			a.logger.Info("catalog seeded", zap.Int("jobs", n))
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d jobs\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Catalog JSON file (defaults to the embedded catalog)")
	return cmd
}
