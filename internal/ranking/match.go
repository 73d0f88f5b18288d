// Package ranking scores resumes against jobs and ranks catalog jobs for a resume.
package ranking

import (
	"fmt"
	"math"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// MinScore and MaxScore bound every match score.
	MinScore = 0
	MaxScore = 100
)

// InvariantError reports a MatchResult that violates the scoring contract.
// It signals a programming error and is never returned alongside data.
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("match invariant %q violated: %s", e.Invariant, e.Detail)
}

// Match compares the resume's skills to the job's. Matched and missing skills
// keep the job's order. A job without skills scores 0.
func Match(resume, job *types.SkillSet) (*types.MatchResult, error) {
	jobIDs := job.IDs()

	matched := make([]types.SkillID, 0, len(jobIDs))
	missing := make([]types.SkillID, 0, len(jobIDs))
	for _, id := range jobIDs {
		if resume.Contains(id) {
			matched = append(matched, id)
		} else {
			missing = append(missing, id)
		}
	}

	result := &types.MatchResult{
		MatchScore:        Percent(len(matched), len(jobIDs)),
		MatchedSkills:     matched,
		MissingSkills:     missing,
		ResumeSkillsCount: resume.Len(),
		JobSkillsCount:    len(jobIDs),
	}

	if err := Verify(result, job); err != nil {
		return nil, err
	}
	return result, nil
}

// Percent returns part/whole as a clamped, half-up rounded percentage.
// A zero whole yields 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return MinScore
	}
	return Clamp(RoundHalfUp(100*float64(part)/float64(whole)), MinScore, MaxScore)
}

// RoundHalfUp rounds to the nearest integer with .5 going up.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Verify checks a result against the job it was computed for: the score is in
// range, the counts agree, and matched and missing partition the job skills in
// job order.
func Verify(result *types.MatchResult, job *types.SkillSet) error {
	if result == nil {
		return &InvariantError{Invariant: "result", Detail: "nil result"}
	}
	if result.MatchScore < MinScore || result.MatchScore > MaxScore {
		return &InvariantError{Invariant: "score_range", Detail: fmt.Sprintf("score %d outside [%d, %d]", result.MatchScore, MinScore, MaxScore)}
	}

	jobIDs := job.IDs()
	if result.JobSkillsCount != len(jobIDs) {
		return &InvariantError{Invariant: "job_count", Detail: fmt.Sprintf("job_skills_count %d, job has %d skills", result.JobSkillsCount, len(jobIDs))}
	}
	if len(result.MatchedSkills)+len(result.MissingSkills) != len(jobIDs) {
		return &InvariantError{Invariant: "partition", Detail: fmt.Sprintf("%d matched + %d missing != %d job skills",
			len(result.MatchedSkills), len(result.MissingSkills), len(jobIDs))}
	}

	// Each job skill must be consumed, in order, from exactly one list.
	i, k := 0, 0
	for _, id := range jobIDs {
		switch {
		case i < len(result.MatchedSkills) && result.MatchedSkills[i] == id:
			i++
		case k < len(result.MissingSkills) && result.MissingSkills[k] == id:
			k++
		default:
			return &InvariantError{Invariant: "partition", Detail: fmt.Sprintf("job skill %q not found in order", id)}
		}
	}
	return nil
}
