package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
)

type matchOptions struct {
	jobFile string
	jobText string
}

// jobDescription returns the job text from --job or --job-text.
func (o matchOptions) jobDescription() (string, error) {
	switch {
	case o.jobFile != "" && o.jobText != "":
		return "", errors.New("pass either --job or --job-text, not both")
	case o.jobFile != "":
		return readInput(o.jobFile, true)
	default:
		return ingestion.JobDescriptionText(o.jobText), nil
	}
}

func newMatchCmd(a *app) *cobra.Command {
	var opts matchOptions
	cmd := &cobra.Command{
		Use:   "match <resume>",
		Short: "Score a resume against a job description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.jobFile == "" && opts.jobText == "" {
				return errors.New("--job or --job-text is required")
			}
			jobText, err := opts.jobDescription()
			if err != nil {
				return err
			}
			resumeText, err := ingestion.ReadFile(args[0])
			if err != nil {
				return err
			}

			engine, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			result, err := engine.MatchText(resumeText, jobText)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			a.printer(cmd.OutOrStdout(), engine.Taxonomy()).PrintMatch("Match", result)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.jobFile, "job", "", "Path to a job description (text or HTML)")
	cmd.Flags().StringVar(&opts.jobText, "job-text", "", "Inline job description")
	return cmd
}
