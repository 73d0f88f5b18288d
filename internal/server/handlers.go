package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logging"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	fieldFile           = "file"
	fieldResumeFiles    = "resume_files"
	fieldJobDescription = "job_description"

	// multipartMemory is how much of a multipart body is buffered in memory
	// before spilling to temp files.
	multipartMemory = 8 << 20
	// formOverhead allows for boundaries and text fields beyond file bytes.
	formOverhead = 1 << 20

	// logPreview is how many runes of free text go into debug logs.
	logPreview = 80
)

var jsonFieldNames = map[string]string{
	"JobDescription": fieldJobDescription,
	"Skills":         "skills",
}

// StatusResponse is the body of /api/ml/status.
type StatusResponse struct {
	TaxonomyLoaded  bool   `json:"taxonomy_loaded"`
	TaxonomyVersion string `json:"version"`
	SkillsCount     int    `json:"skills_count"`
	FuzzyMatching   bool   `json:"fuzzy_matching"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatus reports the loaded taxonomy
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	tax := s.engine.Taxonomy()
	s.jsonResponse(w, http.StatusOK, StatusResponse{
		TaxonomyLoaded:  tax.Len() > 0,
		TaxonomyVersion: tax.Version(),
		SkillsCount:     tax.Len(),
		FuzzyMatching:   tax.FuzzyEnabled(),
	})
}

// handleJobSkills extracts skills from a JSON job description
func (s *Server) handleJobSkills(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req types.JobSkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, r, decodeError(err))
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, r, validationError(err, jsonFieldNames))
		return
	}

	set := s.engine.ExtractSkills(ingestion.JobDescriptionText(req.JobDescription))
	s.logger.Debug("job skills extracted",
		zap.String("request_id", requestID(r.Context())),
		zap.String("job_description", logging.Truncate(req.JobDescription, logPreview)),
		zap.Int("skills", set.Len()))
	s.jsonResponse(w, http.StatusOK, formatSkills(set))
}

// handleAnalyzeResume extracts skills, experience and education from one
// uploaded resume
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	if err := s.parseMultipart(w, r, 1); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	defer removeMultipart(r)

	text, err := s.readResume(r, fieldFile)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, formatAnalysis(s.engine.AnalyzeResume(text)))
}

// handleMatchResumeJob scores one uploaded resume against a job description
func (s *Server) handleMatchResumeJob(w http.ResponseWriter, r *http.Request) {
	if err := s.parseMultipart(w, r, 1); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	defer removeMultipart(r)

	jobText, err := jobDescription(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	resumeText, err := s.readResume(r, fieldFile)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	result, err := s.engine.MatchText(resumeText, jobText)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.logger.Debug("resume matched",
		zap.String("request_id", requestID(r.Context())),
		zap.String("job_description", logging.Truncate(jobText, logPreview)),
		zap.Int("match_score", result.MatchScore))
	s.jsonResponse(w, http.StatusOK, formatMatch(result))
}

// handleBatchAnalyze scores every uploaded resume against one job description.
// A single file gets a plain match object; several files get one array
// element per file, in upload order.
func (s *Server) handleBatchAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := s.parseMultipart(w, r, s.cfg.MaxBatchFiles); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	defer removeMultipart(r)

	// A blank job description has no skills, so every resume scores 0.
	jobText := ingestion.JobDescriptionText(r.FormValue(fieldJobDescription))

	headers := r.MultipartForm.File[fieldResumeFiles]
	switch {
	case len(headers) == 0:
		s.errorResponse(w, r, &ErrValidation{Field: fieldResumeFiles, Message: "at least one file is required"})
		return
	case len(headers) > s.cfg.MaxBatchFiles:
		s.errorResponse(w, r, &ErrValidation{
			Field:   fieldResumeFiles,
			Message: fmt.Sprintf("at most %d files per request", s.cfg.MaxBatchFiles),
		})
		return
	}

	docs := make([]pipeline.Document, len(headers))
	for i, fh := range headers {
		docs[i] = pipeline.Document{
			ID:   fh.Filename,
			Load: func() (string, error) { return s.extractHeader(fh) },
		}
	}

	results := s.engine.BatchMatch(r.Context(), jobText, docs, pipeline.BatchOptions{})
	s.logger.Debug("batch analyzed",
		zap.String("request_id", requestID(r.Context())),
		zap.Int("files", len(results)),
		zap.Int("succeeded", results.Succeeded()))

	if len(results) == 1 {
		item := results[0]
		if !item.OK() {
			s.errorResponse(w, r, item.Err)
			return
		}
		s.jsonResponse(w, http.StatusOK, formatMatch(item.Result))
		return
	}
	s.jsonResponse(w, http.StatusOK, formatBatch(results))
}

// handleRecommendJobs ranks catalog jobs for a resume. The resume is either
// an uploaded file or a JSON list of skill names.
func (s *Server) handleRecommendJobs(w http.ResponseWriter, r *http.Request) {
	var (
		resume     *types.SkillSet
		unresolved []string
	)

	if isJSON(r) {
		r.Body = http.MaxBytesReader(w, r.Body, formOverhead)
		var req types.RecommendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, r, decodeError(err))
			return
		}
		if err := req.Validate(); err != nil {
			s.errorResponse(w, r, validationError(err, jsonFieldNames))
			return
		}
		resume, unresolved = s.engine.ResolveSkills(req.Skills)
	} else {
		if err := s.parseMultipart(w, r, 1); err != nil {
			s.errorResponse(w, r, err)
			return
		}
		defer removeMultipart(r)

		text, err := s.readResume(r, fieldFile)
		if err != nil {
			s.errorResponse(w, r, err)
			return
		}
		resume = s.engine.ExtractSkills(text)
	}

	jobs, err := s.catalog.Jobs(r.Context())
	if err != nil {
		s.errorResponse(w, r, fmt.Errorf("failed to load job catalog: %w", err))
		return
	}
	recs, err := s.engine.Recommend(resume, jobs, *s.cfg.Recommend)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, formatRecommendations(recs, unresolved, resume.Len()))
}

// parseMultipart caps the body for up to files uploads and parses the form.
func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request, files int) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*int64(files)+formOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return &ErrValidation{Field: "body", Message: "expected multipart/form-data"}
	}
	return nil
}

func removeMultipart(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}

// readResume extracts the text of the single file uploaded under field.
func (s *Server) readResume(r *http.Request, field string) (string, error) {
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return "", &ErrValidation{Field: field, Message: "file is required"}
	}
	return s.extractHeader(headers[0])
}

func (s *Server) extractHeader(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := ingestion.ReadUploadLimit(fh.Filename, f, s.cfg.MaxUploadBytes)
	if err != nil {
		return "", err
	}
	return ingestion.ExtractUpload(fh.Filename, data)
}

// jobDescription validates the job_description form field and returns its text.
func jobDescription(r *http.Request) (string, error) {
	req := types.MatchFormRequest{JobDescription: r.FormValue(fieldJobDescription)}
	if err := req.Validate(); err != nil {
		return "", validationError(err, jsonFieldNames)
	}
	return ingestion.JobDescriptionText(req.JobDescription), nil
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
}
