package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/types"
)

type recommendOptions struct {
	skills   []string
	minScore int
	limit    int
}

// recommendationOutput is the JSON form of one recommendation.
type recommendationOutput struct {
	Key           string          `json:"key"`
	Title         string          `json:"title"`
	Company       string          `json:"company"`
	Location      string          `json:"location"`
	Salary        string          `json:"salary"`
	Match         int             `json:"match"`
	MatchedSkills []types.SkillID `json:"matched_skills"`
	MissingSkills []types.SkillID `json:"missing_skills"`
}

func newRecommendCmd(a *app) *cobra.Command {
	var opts recommendOptions
	cmd := &cobra.Command{
		Use:   "recommend [resume]",
		Short: "Recommend catalog jobs for a resume or a list of skills",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == (len(opts.skills) > 0) {
				return errors.New("pass either a resume file or --skills")
			}

			engine, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}

			var resume *types.SkillSet
			if len(args) == 1 {
				text, err := ingestion.ReadFile(args[0])
				if err != nil {
					return err
				}
				resume = engine.ExtractSkills(text)
			} else {
				var unresolved []string
				resume, unresolved = engine.ResolveSkills(opts.skills)
				for _, name := range unresolved {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skill %q not in taxonomy\n", name)
				}
			}

			a.overrideCatalog(cmd)
			jobs, closeCatalog, err := a.catalogSource(cmd.Context())
			if err != nil {
				return err
			}
			defer closeCatalog()
			catalogJobs, err := jobs.Jobs(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load job catalog: %w", err)
			}

			rankOpts := a.cfg.RecommendOptions()
			if cmd.Flags().Changed("min-score") {
				rankOpts.MinScore = opts.minScore
			}
			if cmd.Flags().Changed("limit") {
				rankOpts.Limit = opts.limit
			}
			recs, err := engine.Recommend(resume, catalogJobs, rankOpts)
			if err != nil {
				return err
			}

			if a.jsonOutput {
				out := make([]recommendationOutput, len(recs))
				for i, r := range recs {
					out[i] = recommendationOutput{
						Key:           r.Job.Key,
						Title:         r.Job.Title,
						Company:       r.Job.Company,
						Location:      r.Job.Location,
						Salary:        r.Job.Salary,
						Match:         r.Result.MatchScore,
						MatchedSkills: r.Result.MatchedSkills,
						MissingSkills: r.Result.MissingSkills,
					}
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}
			a.printer(cmd.OutOrStdout(), engine.Taxonomy()).PrintRecommendations(recs)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&opts.skills, "skills", nil, "Comma-separated skill names instead of a resume")
	cmd.Flags().IntVar(&opts.minScore, "min-score", ranking.DefaultMinScore, "Minimum match score to include (-1 includes every job)")
	cmd.Flags().IntVar(&opts.limit, "limit", ranking.DefaultLimit, "Maximum number of recommendations (0 for no limit)")
	cmd.Flags().String("catalog", config.CatalogEmbedded, `Job catalog: "embedded", "database" or a file path`)
	return cmd
}
