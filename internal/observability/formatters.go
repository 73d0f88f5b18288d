// Package observability renders human-readable summaries for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Namer maps a skill ID to its display name.
type Namer interface {
	Name(id types.SkillID) string
}

// Printer writes boxed summaries of extraction and match results.
type Printer struct {
	out   io.Writer
	names Namer
}

// NewPrinter creates a Printer writing to out. names may be nil, in which
// case skill IDs are printed as-is.
func NewPrinter(out io.Writer, names Namer) *Printer {
	return &Printer{out: out, names: names}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func (p *Printer) name(id types.SkillID) string {
	if p.names == nil {
		return string(id)
	}
	return p.names.Name(id)
}

func (p *Printer) joinNames(ids []types.SkillID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = p.name(id)
	}
	return strings.Join(names, ", ")
}

// PrintSkills lists every skill in the set with its first surface form.
func (p *Printer) PrintSkills(title string, set *types.SkillSet) {
	var sb strings.Builder
	ids := set.IDs()
	sb.WriteString(fmt.Sprintf("Skills found: %d\n", len(ids)))
	if len(ids) > 0 {
		sb.WriteString("\n")
	}
	for _, id := range ids {
		sb.WriteString(fmt.Sprintf("  • %s", p.name(id)))
		if first, ok := set.First(id); ok && first.Confidence == types.ConfidenceFuzzy {
			sb.WriteString(fmt.Sprintf(" (fuzzy: %q)", first.Surface))
		}
		sb.WriteString("\n")
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs stated experience and education. Nothing is printed
// when the profile is empty.
func (p *Printer) PrintProfile(title string, profile parsing.Profile) {
	if profile == (parsing.Profile{}) {
		return
	}
	var lines []string
	if exp := profile.Experience(); exp != "" {
		lines = append(lines, fmt.Sprintf("Experience: %s", exp))
	}
	if edu := profile.Education(); edu != "" {
		lines = append(lines, fmt.Sprintf("Education:  %s", edu))
	}
	p.printBox(title, strings.Join(lines, "\n"))
}

// PrintMatch outputs the score with matched and missing skills.
func (p *Printer) PrintMatch(title string, result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match score:   %d%%\n", result.MatchScore))
	sb.WriteString(fmt.Sprintf("Resume skills: %d\n", result.ResumeSkillsCount))
	sb.WriteString(fmt.Sprintf("Job skills:    %d\n", result.JobSkillsCount))

	if len(result.MatchedSkills) > 0 {
		sb.WriteString("\nMatched:\n")
		for _, id := range result.MatchedSkills {
			sb.WriteString(fmt.Sprintf("  ✓ %s\n", p.name(id)))
		}
	}
	if len(result.MissingSkills) > 0 {
		sb.WriteString("\nMissing:\n")
		for _, id := range result.MissingSkills {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", p.name(id)))
		}
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatch outputs one line per resume in submission order.
func (p *Printer) PrintBatch(results types.BatchResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Resumes: %d  Succeeded: %d\n\n", len(results), results.Succeeded()))

	for _, item := range results {
		if item.OK() {
			sb.WriteString(fmt.Sprintf("%3d%%  %s\n", item.Result.MatchScore, item.ID))
			if len(item.Result.MissingSkills) > 0 {
				sb.WriteString(fmt.Sprintf("      missing: %s\n", p.joinNames(item.Result.MissingSkills)))
			}
			continue
		}
		sb.WriteString(fmt.Sprintf("  ⚠   %s\n", item.ID))
		sb.WriteString(fmt.Sprintf("      %v\n", item.Err))
	}

	p.printBox("BATCH MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the top recommended jobs.
func (p *Printer) PrintRecommendations(recs []ranking.Recommendation) {
	if len(recs) == 0 {
		p.printBox("RECOMMENDED JOBS", "No jobs above the match threshold")
		return
	}

	var sb strings.Builder
	count := min(len(recs), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := recs[i]
		sb.WriteString(fmt.Sprintf("#%d  %s (%d%%)\n", i+1, rec.Job.Title, rec.Result.MatchScore))
		if rec.Job.Company != "" {
			sb.WriteString(fmt.Sprintf("    %s, %s\n", rec.Job.Company, rec.Job.Location))
		}
		if len(rec.Result.MissingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Missing: %s\n", p.joinNames(rec.Result.MissingSkills)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(recs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(recs)-maxItemsToShow))
	}

	p.printBox("RECOMMENDED JOBS", strings.TrimSuffix(sb.String(), "\n"))
}
