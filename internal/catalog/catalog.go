// Package catalog provides the job catalog used for recommendations.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-matcher/internal/schemas"
)

//go:embed data/jobs.json
var embeddedDocument []byte

// Job is one catalog posting. RequiredSkills are taxonomy surface forms
// ("Node.js", "Agile Methodology") resolved when the catalog is indexed.
type Job struct {
	Key            string   `json:"key"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Salary         string   `json:"salary"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
}

// Document is the on-disk form of a catalog.
type Document struct {
	Jobs []Job `json:"jobs"`
}

// Source lists catalog jobs.
type Source interface {
	Jobs(ctx context.Context) ([]Job, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Job, error)

// Jobs calls f.
func (f SourceFunc) Jobs(ctx context.Context) ([]Job, error) {
	return f(ctx)
}

// Static is an in-memory Source.
type Static struct {
	jobs []Job
}

// NewStatic creates a Source over a fixed list of jobs.
func NewStatic(jobs []Job) *Static {
	return &Static{jobs: cloneJobs(jobs)}
}

// Jobs returns a copy of the jobs.
func (s *Static) Jobs(_ context.Context) ([]Job, error) {
	return cloneJobs(s.jobs), nil
}

// Embedded returns the catalog compiled into the binary.
func Embedded() ([]Job, error) {
	return Parse(embeddedDocument)
}

// LoadFile reads and validates a catalog document from disk.
func LoadFile(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates data against the job catalog schema and decodes it.
// Keys must be unique.
func Parse(data []byte) ([]Job, error) {
	if err := schemas.ValidateDocument(schemas.JobCatalog, data); err != nil {
		return nil, fmt.Errorf("invalid job catalog: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode job catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Jobs))
	for _, job := range doc.Jobs {
		if _, dup := seen[job.Key]; dup {
			return nil, fmt.Errorf("invalid job catalog: duplicate key %q", job.Key)
		}
		seen[job.Key] = struct{}{}
	}
	return doc.Jobs, nil
}

func cloneJobs(jobs []Job) []Job {
	out := make([]Job, len(jobs))
	for i, j := range jobs {
		j.RequiredSkills = append([]string(nil), j.RequiredSkills...)
		out[i] = j
	}
	return out
}
