package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
)

// batchItemOutput is the JSON form of one batch result.
type batchItemOutput struct {
	File string `json:"file"`
	*types.MatchResult
	Error string `json:"error,omitempty"`
}

func newBatchCmd(a *app) *cobra.Command {
	var opts matchOptions
	cmd := &cobra.Command{
		Use:   "batch <resume|dir>...",
		Short: "Score many resumes against one job description",
		Long: `Score every resume against one job description concurrently. Directories
are expanded to the PDF and DOCX files they contain. A file that fails to
extract is reported without affecting the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.jobFile == "" && opts.jobText == "" {
				return errors.New("--job or --job-text is required")
			}
			jobText, err := opts.jobDescription()
			if err != nil {
				return err
			}
			paths, err := expandResumePaths(args)
			if err != nil {
				return err
			}
			if n := a.cfg.Batch.MaxFiles; len(paths) > n {
				return fmt.Errorf("%d resumes exceeds the batch limit of %d", len(paths), n)
			}

			engine, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}

			docs := make([]pipeline.Document, len(paths))
			for i, p := range paths {
				docs[i] = pipeline.Document{
					ID:   p,
					Load: func() (string, error) { return ingestion.ReadFile(p) },
				}
			}

			var batchOpts pipeline.BatchOptions
			if !a.jsonOutput {
				stderr := cmd.ErrOrStderr()
				batchOpts.OnProgress = func(ev pipeline.ProgressEvent) {
					status := "ok"
					if ev.Err != nil {
						status = "failed"
					}
					fmt.Fprintf(stderr, "[%d/%d] %s %s\n", ev.Done, ev.Total, filepath.Base(ev.ID), status)
				}
			}

			results := engine.BatchMatch(cmd.Context(), jobText, docs, batchOpts)
			if a.jsonOutput {
				out := make([]batchItemOutput, len(results))
				for i, item := range results {
					out[i] = batchItemOutput{File: item.ID, MatchResult: item.Result}
					if item.Err != nil {
						out[i].Error = item.Err.Error()
					}
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}
			a.printer(cmd.OutOrStdout(), engine.Taxonomy()).PrintBatch(results)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.jobFile, "job", "", "Path to a job description (text or HTML)")
	cmd.Flags().StringVar(&opts.jobText, "job-text", "", "Inline job description")
	return cmd
}

// expandResumePaths replaces each directory argument with the resume
// documents directly inside it, sorted by name.
func expandResumePaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				// Reported per item by the batch.
				paths = append(paths, arg)
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, ok := ingestion.FormatFromName(e.Name()); ok {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, errors.New("no resume files found")
	}
	return paths, nil
}
