package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/pipeline"
)

type extractOptions struct {
	text string
	job  bool
}

// extractOutput is the JSON form of extract. Resume input also reports the
// stated experience and education when found.
type extractOutput struct {
	Skills     []string `json:"skills"`
	Experience string   `json:"experience,omitempty"`
	Education  string   `json:"education,omitempty"`
}

func newExtractCmd(a *app) *cobra.Command {
	var opts extractOptions
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract canonical skills from a resume or job description",
		Long: `Extract canonical skill IDs from a PDF, DOCX or text file, or from --text.
Resumes also report stated years of experience and the highest degree.
With --job the input is treated as a job description and may contain HTML.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			switch {
			case len(args) == 1 && opts.text != "":
				return errors.New("pass either a file or --text, not both")
			case len(args) == 1:
				var err error
				if text, err = readInput(args[0], opts.job); err != nil {
					return err
				}
			case opts.text != "":
				text = opts.text
				if opts.job {
					text = ingestion.JobDescriptionText(text)
				}
			default:
				return errors.New("a file or --text is required")
			}

			engine, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			var analysis pipeline.Analysis
			if opts.job {
				analysis.Skills = engine.ExtractSkills(text)
			} else {
				analysis = engine.AnalyzeResume(text)
			}

			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), extractOutput{
					Skills:     analysis.Skills.Strings(),
					Experience: analysis.Profile.Experience(),
					Education:  analysis.Profile.Education(),
				})
			}
			printer := a.printer(cmd.OutOrStdout(), engine.Taxonomy())
			printer.PrintSkills("Extracted Skills", analysis.Skills)
			printer.PrintProfile("Resume Profile", analysis.Profile)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.text, "text", "", "Inline text to extract from")
	cmd.Flags().BoolVar(&opts.job, "job", false, "Treat the input as a job description")
	return cmd
}

// readInput returns the text of path. Job descriptions are read as raw
// text or HTML; resumes go through document extraction.
func readInput(path string, job bool) (string, error) {
	if !job {
		return ingestion.ReadFile(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return ingestion.JobDescriptionText(string(data)), nil
}
