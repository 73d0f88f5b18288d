package server

import (
	"net/http"

	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/types"
)

// SkillsResponse is the body of /job_skills.
type SkillsResponse struct {
	Skills []string `json:"skills"`
}

// AnalyzeResponse is the body of /analyze_resume. Experience and education
// are omitted when the resume does not state them.
type AnalyzeResponse struct {
	Skills     []string `json:"skills"`
	Experience string   `json:"experience,omitempty"`
	Education  string   `json:"education,omitempty"`
}

// MatchResponse is the wire form of a match result.
type MatchResponse struct {
	MatchScore        int      `json:"match_score"`
	MatchedSkills     []string `json:"matched_skills"`
	MissingSkills     []string `json:"missing_skills"`
	ResumeSkillsCount int      `json:"resume_skills_count"`
	JobSkillsCount    int      `json:"job_skills_count"`
}

// BatchItemResponse is one element of a multi-file batch response. Exactly
// one of the embedded match fields or Error is present.
type BatchItemResponse struct {
	FileName string `json:"file_name"`
	*MatchResponse
	Error string `json:"error,omitempty"`
}

// RecommendationResponse is one ranked catalog job.
type RecommendationResponse struct {
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Salary        string   `json:"salary"`
	Description   string   `json:"description"`
	Match         int      `json:"match"`
	Skills        []string `json:"skills"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

// RecommendResponse is the body of /recommend_jobs.
type RecommendResponse struct {
	Recommendations   []RecommendationResponse `json:"recommendations"`
	UnresolvedSkills  []string                 `json:"unresolved_skills,omitempty"`
	ResumeSkillsCount int                      `json:"resume_skills_count"`
}

func formatSkills(set *types.SkillSet) SkillsResponse {
	return SkillsResponse{Skills: set.Strings()}
}

func formatAnalysis(a pipeline.Analysis) AnalyzeResponse {
	return AnalyzeResponse{
		Skills:     a.Skills.Strings(),
		Experience: a.Profile.Experience(),
		Education:  a.Profile.Education(),
	}
}

func formatMatch(result *types.MatchResult) MatchResponse {
	return MatchResponse{
		MatchScore:        result.MatchScore,
		MatchedSkills:     skillStrings(result.MatchedSkills),
		MissingSkills:     skillStrings(result.MissingSkills),
		ResumeSkillsCount: result.ResumeSkillsCount,
		JobSkillsCount:    result.JobSkillsCount,
	}
}

func formatBatch(results types.BatchResult) []BatchItemResponse {
	out := make([]BatchItemResponse, len(results))
	for i, item := range results {
		out[i] = BatchItemResponse{FileName: item.ID}
		if item.OK() {
			m := formatMatch(item.Result)
			out[i].MatchResponse = &m
			continue
		}
		out[i].Error = itemErrorMessage(item.Err)
	}
	return out
}

func formatRecommendations(recs []ranking.Recommendation, unresolved []string, resumeSkills int) RecommendResponse {
	out := RecommendResponse{
		Recommendations:   make([]RecommendationResponse, len(recs)),
		UnresolvedSkills:  unresolved,
		ResumeSkillsCount: resumeSkills,
	}
	for i, rec := range recs {
		skills := rec.Job.RequiredSkills
		if skills == nil {
			skills = []string{}
		}
		out.Recommendations[i] = RecommendationResponse{
			Title:         rec.Job.Title,
			Company:       rec.Job.Company,
			Location:      rec.Job.Location,
			Salary:        rec.Job.Salary,
			Description:   rec.Job.Description,
			Match:         rec.Result.MatchScore,
			Skills:        skills,
			MatchedSkills: skillStrings(rec.Result.MatchedSkills),
			MissingSkills: skillStrings(rec.Result.MissingSkills),
		}
	}
	return out
}

func skillStrings(ids []types.SkillID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// itemErrorMessage hides internal failures from clients.
func itemErrorMessage(err error) string {
	if err == nil {
		return "no result"
	}
	if status, _ := classify(err); status == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}
