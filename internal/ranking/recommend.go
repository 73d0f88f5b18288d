package ranking

import (
	"sort"

	"github.com/jonathan/resume-matcher/internal/catalog"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Recommendation defaults.
const (
	DefaultMinScore = 50
	DefaultLimit    = 10
)

// Candidate is a catalog job with its resolved skills.
type Candidate struct {
	Job    catalog.Job
	Skills *types.SkillSet
}

// Recommendation is a ranked catalog job.
type Recommendation struct {
	Job    catalog.Job
	Result *types.MatchResult
}

// RecommendOptions filters and truncates recommendations.
type RecommendOptions struct {
	// MinScore is exclusive: a job must score strictly more to be recommended.
	// A negative value keeps every job.
	MinScore int
	// Limit caps the result length; 0 or less means no cap.
	Limit int
}

// DefaultRecommendOptions returns the options used by the HTTP and CLI surfaces.
func DefaultRecommendOptions() RecommendOptions {
	return RecommendOptions{MinScore: DefaultMinScore, Limit: DefaultLimit}
}

// Recommend scores the resume against every candidate and returns those above
// MinScore, best first. Equal scores order by title, then key.
func Recommend(resume *types.SkillSet, candidates []Candidate, opts RecommendOptions) ([]Recommendation, error) {
	recs := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		result, err := Match(resume, c.Skills)
		if err != nil {
			return nil, err
		}
		if result.MatchScore <= opts.MinScore {
			continue
		}
		recs = append(recs, Recommendation{Job: c.Job, Result: result})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Result.MatchScore != b.Result.MatchScore {
			return a.Result.MatchScore > b.Result.MatchScore
		}
		if a.Job.Title != b.Job.Title {
			return a.Job.Title < b.Job.Title
		}
		return a.Job.Key < b.Job.Key
	})

	if opts.Limit > 0 && len(recs) > opts.Limit {
		recs = recs[:opts.Limit]
	}
	return recs, nil
}
