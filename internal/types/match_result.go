package types

// MatchResult is the score and skill report for one resume compared against one job.
type MatchResult struct {
	MatchScore        int       `json:"match_score"`
	MatchedSkills     []SkillID `json:"matched_skills"`
	MissingSkills     []SkillID `json:"missing_skills"`
	ResumeSkillsCount int       `json:"resume_skills_count"`
	JobSkillsCount    int       `json:"job_skills_count"`
}

// BatchItem is the outcome for one resume in a batch. Exactly one of Result or Err is set.
type BatchItem struct {
	Index  int
	ID     string
	Result *MatchResult
	Err    error
}

// OK reports whether the item produced a result.
func (b BatchItem) OK() bool {
	return b.Err == nil && b.Result != nil
}

// BatchResult holds per-resume outcomes in the order the resumes were submitted.
type BatchResult []BatchItem

// Succeeded returns the number of items that produced a result.
func (r BatchResult) Succeeded() int {
	n := 0
	for _, item := range r {
		if item.OK() {
			n++
		}
	}
	return n
}
