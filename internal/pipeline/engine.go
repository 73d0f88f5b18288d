// Package pipeline wires normalization, extraction and scoring into the
// matching engine and runs batch matches concurrently.
package pipeline

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/catalog"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Option configures an Engine.
type Option func(*Engine)

// WithConcurrency bounds how many resumes BatchMatch processes at once.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithMaxNGram sets the widest window the extractor tries.
func WithMaxNGram(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxNGram = n
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine extracts skills and scores matches against one taxonomy.
// It is immutable after NewEngine and safe for concurrent use.
type Engine struct {
	taxonomy    *taxonomy.Taxonomy
	extractor   *skills.Extractor
	concurrency int
	maxNGram    int
	logger      *zap.Logger
}

// NewEngine creates an engine over tax.
func NewEngine(tax *taxonomy.Taxonomy, opts ...Option) *Engine {
	e := &Engine{
		taxonomy:    tax,
		concurrency: runtime.NumCPU(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	var extractorOpts []skills.Option
	if e.maxNGram > 0 {
		extractorOpts = append(extractorOpts, skills.WithMaxNGram(e.maxNGram))
	}
	e.extractor = skills.NewExtractor(tax, extractorOpts...)
	return e
}

// Taxonomy returns the taxonomy the engine resolves against.
func (e *Engine) Taxonomy() *taxonomy.Taxonomy { return e.taxonomy }

// Concurrency returns the batch worker limit.
func (e *Engine) Concurrency() int { return e.concurrency }

// ExtractSkills returns the skills found in text.
func (e *Engine) ExtractSkills(text string) *types.SkillSet {
	return e.extractor.ExtractText(text)
}

// Analysis is the result of analyzing one resume.
type Analysis struct {
	Skills  *types.SkillSet
	Profile parsing.Profile
}

// AnalyzeResume extracts skills, stated years of experience and the highest
// education level from resume text.
func (e *Engine) AnalyzeResume(text string) Analysis {
	return Analysis{
		Skills:  e.ExtractSkills(text),
		Profile: parsing.ExtractProfile(text),
	}
}

// MatchText extracts both documents and scores the resume against the job.
func (e *Engine) MatchText(resumeText, jobText string) (*types.MatchResult, error) {
	return ranking.Match(e.ExtractSkills(resumeText), e.ExtractSkills(jobText))
}

// ResolveSkills resolves a list of skill names, such as a catalog job's
// requirements or a client-supplied skill list. Names that do not resolve are
// returned separately, in input order.
func (e *Engine) ResolveSkills(names []string) (*types.SkillSet, []string) {
	set := types.NewSkillSet()
	var unresolved []string
	for _, name := range names {
		m, ok := e.taxonomy.Lookup(name)
		if !ok {
			unresolved = append(unresolved, name)
			continue
		}
		set.Add(types.ExtractedSkill{
			ID:         m.ID,
			Alias:      m.Alias,
			Surface:    name,
			Confidence: m.Confidence,
		})
	}
	return set, unresolved
}

// IndexCatalog resolves every job's required skills. Unknown skill names are
// logged and dropped.
func (e *Engine) IndexCatalog(jobs []catalog.Job) []ranking.Candidate {
	candidates := make([]ranking.Candidate, 0, len(jobs))
	for _, job := range jobs {
		set, unresolved := e.ResolveSkills(job.RequiredSkills)
		if len(unresolved) > 0 {
			e.logger.Warn("catalog job has skills missing from taxonomy",
				zap.String("job", job.Key),
				zap.Strings("skills", unresolved),
				zap.String("taxonomy_version", e.taxonomy.Version()))
		}
		candidates = append(candidates, ranking.Candidate{Job: job, Skills: set})
	}
	return candidates
}

// Recommend ranks catalog jobs for a resume skill set.
func (e *Engine) Recommend(resume *types.SkillSet, jobs []catalog.Job, opts ranking.RecommendOptions) ([]ranking.Recommendation, error) {
	return ranking.Recommend(resume, e.IndexCatalog(jobs), opts)
}
