package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = validator.New()

// JobSkillsRequest is the body of POST /job_skills.
type JobSkillsRequest struct {
	JobDescription string `json:"job_description" validate:"required,notblank"`
}

// Validate validates the JobSkillsRequest using the validator.
func (r *JobSkillsRequest) Validate() error {
	return validate.Struct(r)
}

// MatchFormRequest carries the non-file fields of the multipart match endpoints.
type MatchFormRequest struct {
	JobDescription string `validate:"required,notblank"`
}

// Validate validates the MatchFormRequest using the validator.
func (r *MatchFormRequest) Validate() error {
	return validate.Struct(r)
}

// RecommendRequest is the JSON body of POST /recommend_jobs.
type RecommendRequest struct {
	Skills []string `json:"skills" validate:"required,min=1,dive,notblank"`
}

// Validate validates the RecommendRequest using the validator.
func (r *RecommendRequest) Validate() error {
	return validate.Struct(r)
}

func init() {
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
}
