package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
)

const scenarioJob = "Looking for a Python developer with experience in Flask and Django."

var resumePDF = filepath.Join("..", "..", "internal", "ingestion", "testdata", "resume.pdf")

// TestMain drops RESUME_MATCHER_* variables so a local setup cannot change
// command output.
func TestMain(m *testing.M) {
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, config.EnvPrefix+"_") {
			_ = os.Unsetenv(name)
		}
	}
	os.Exit(m.Run())
}

// execute runs the CLI in-process and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RESUME_MATCHER_DATABASE_URL", "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "resume_matcher dev\n", out)
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "inline text",
			args: []string{"extract", "--json", "--text", "Senior engineer with Python, Django and AWS experience."},
			want: `{"skills":["python","django","aws"]}`,
		},
		{
			name: "html job description",
			args: []string{"extract", "--json", "--job", "--text", "<p>Python</p><p>Kubernetes</p>"},
			want: `{"skills":["python","kubernetes"]}`,
		},
		{
			name: "pdf resume",
			args: []string{"extract", "--json", resumePDF},
			want: `{"skills":["python","flask","django","kubernetes"]}`,
		},
		{
			name: "text file",
			args: []string{"extract", "--json", writeFile(t, "resume.txt", "Python and AWS")},
			want: `{"skills":["python","aws"]}`,
		},
		{
			name: "no skills",
			args: []string{"extract", "--json", "--text", "We value kindness"},
			want: `{"skills":[]}`,
		},
		{
			name: "resume profile",
			args: []string{"extract", "--json", "--text", "PhD in physics. 12+ years of experience: Python, Kubernetes"},
			want: `{"skills":["python","kubernetes"],"experience":"12 years","education":"Doctorate"}`,
		},
		{
			name: "job descriptions skip the profile",
			args: []string{"extract", "--json", "--job", "--text", "PhD and 5+ years with Python"},
			want: `{"skills":["python"]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, out)
		})
	}
}

func TestExtract_HumanOutput(t *testing.T) {
	out, _, err := execute(t, "extract", "--text", "Python and AWS")
	require.NoError(t, err)
	assert.Contains(t, out, "Skills found: 2")
	assert.Contains(t, out, "Python")
	assert.NotContains(t, out, "Resume Profile")

	out, _, err = execute(t, "extract", "--text", "MBA. 3 years of experience with Python")
	require.NoError(t, err)
	assert.Contains(t, out, "Resume Profile")
	assert.Contains(t, out, "Experience: 3 years")
	assert.Contains(t, out, "Master's Degree")
}

func TestExtract_InputErrors(t *testing.T) {
	_, _, err := execute(t, "extract")
	assert.EqualError(t, err, "a file or --text is required")

	_, _, err = execute(t, "extract", "--text", "Python", resumePDF)
	assert.Error(t, err)

	_, _, err = execute(t, "extract", filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorContains(t, err, "file not found")
}

func TestMatch(t *testing.T) {
	out, _, err := execute(t, "match", "--json", "--job-text", scenarioJob, resumePDF)
	require.NoError(t, err)

	var result struct {
		MatchScore    int      `json:"match_score"`
		MatchedSkills []string `json:"matched_skills"`
		MissingSkills []string `json:"missing_skills"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 100, result.MatchScore)
	assert.Equal(t, []string{"python", "flask", "django"}, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)
}

func TestMatch_JobFile(t *testing.T) {
	job := writeFile(t, "job.html", "<ul><li>Python</li><li>Kubernetes</li><li>Rust</li></ul>")
	out, _, err := execute(t, "match", "--job", job, resumePDF)
	require.NoError(t, err)
	assert.Contains(t, out, "Match score:   67%")
}

func TestMatch_RequiresJob(t *testing.T) {
	_, _, err := execute(t, "match", resumePDF)
	assert.EqualError(t, err, "--job or --job-text is required")
}

func TestBatch(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.pdf")
	out, stderr, err := execute(t, "batch", "--json", "--job-text", scenarioJob, resumePDF, missing)
	require.NoError(t, err)
	assert.Empty(t, stderr)

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, resumePDF, items[0]["file"])
	assert.EqualValues(t, 100, items[0]["match_score"])
	assert.Equal(t, missing, items[1]["file"])
	assert.Contains(t, items[1]["error"], "file not found")
}

func TestBatch_DirectoryAndProgress(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(resumePDF)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), data, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), data, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("Python"), 0o644))

	out, stderr, err := execute(t, "batch", "--job-text", scenarioJob, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Resumes: 2  Succeeded: 2")
	assert.Contains(t, stderr, "[1/2]")
	assert.Contains(t, stderr, "[2/2]")
	assert.NotContains(t, stderr, "notes.md")
}

func TestExpandResumePaths_EmptyDirectory(t *testing.T) {
	_, err := expandResumePaths([]string{t.TempDir()})
	assert.EqualError(t, err, "no resume files found")
}

func TestRecommend_Skills(t *testing.T) {
	out, stderr, err := execute(t, "recommend", "--json", "--skills", "Python,ML,TensorFlow,NLP,Basket Weaving")
	require.NoError(t, err)
	assert.Contains(t, stderr, `skill "Basket Weaving" not in taxonomy`)

	var recs []recommendationOutput
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "ml_engineer_nlp", recs[0].Key)
	assert.Equal(t, 100, recs[0].Match)
}

func TestRecommend_ResumeWithOverrides(t *testing.T) {
	out, _, err := execute(t, "recommend", "--json", "--min-score", "20", "--limit", "2", resumePDF)
	require.NoError(t, err)

	var recs []recommendationOutput
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, "backend_developer", recs[0].Key)
	assert.Equal(t, 33, recs[0].Match)
	assert.Equal(t, "applied_data_scientist", recs[1].Key)
}

func TestRecommend_CatalogFile(t *testing.T) {
	catalogFile := writeFile(t, "jobs.json", `{"jobs":[
		{"key":"py","title":"Python Dev","company":"Acme","location":"Remote","salary":"","description":"","required_skills":["Python","Flask"]}
	]}`)
	out, _, err := execute(t, "recommend", "--catalog", catalogFile, resumePDF)
	require.NoError(t, err)
	assert.Contains(t, out, "#1  Python Dev (100%)")
}

func TestRecommend_InputErrors(t *testing.T) {
	_, _, err := execute(t, "recommend")
	assert.EqualError(t, err, "pass either a resume file or --skills")

	_, _, err = execute(t, "recommend", "--skills", "Python", resumePDF)
	assert.EqualError(t, err, "pass either a resume file or --skills")

	_, _, err = execute(t, "recommend", "--catalog", "database", "--skills", "Python")
	assert.ErrorContains(t, err, "requires database.url")
}

func TestTaxonomyValidate(t *testing.T) {
	out, _, err := execute(t, "taxonomy", "validate", "--json")
	require.NoError(t, err)

	tax, err := taxonomy.Default()
	require.NoError(t, err)

	var summary taxonomySummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, taxonomy.EmbeddedSource, summary.Source)
	assert.Equal(t, tax.Version(), summary.Version)
	assert.Equal(t, tax.Len(), summary.Skills)

	total := 0
	for _, n := range summary.Categories {
		total += n
	}
	assert.Equal(t, tax.Len(), total)
}

func TestTaxonomyValidate_InvalidFile(t *testing.T) {
	bad := writeFile(t, "taxonomy.json", `{"version":"1","skills":[{"id":"Not Valid"}]}`)
	_, _, err := execute(t, "taxonomy", "validate", bad)
	var loadErr *taxonomy.LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestCatalogValidate(t *testing.T) {
	out, _, err := execute(t, "catalog", "validate", "--json")
	require.NoError(t, err)

	var summary struct {
		Jobs       int                 `json:"jobs"`
		Unresolved map[string][]string `json:"unresolved"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 19, summary.Jobs)
	assert.Empty(t, summary.Unresolved)
}

func TestCatalogValidate_ReportsUnknownSkills(t *testing.T) {
	catalogFile := writeFile(t, "jobs.json", `{"jobs":[
		{"key":"odd","title":"Odd Job","company":"","location":"","salary":"","description":"","required_skills":["Python","Underwater Basket Weaving"]}
	]}`)
	out, _, err := execute(t, "catalog", "validate", catalogFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog is valid: 1 jobs")
	assert.Contains(t, out, "odd: not in taxonomy")
	assert.Contains(t, out, "Underwater Basket Weaving")
}

func TestCatalogSeed_RequiresDatabase(t *testing.T) {
	_, _, err := execute(t, "catalog", "seed")
	assert.EqualError(t, err, "database.url or DATABASE_URL is required")
}

func TestInvalidConfig(t *testing.T) {
	_, _, err := execute(t, "--log-format", "xml", "extract", "--text", "Python")
	assert.ErrorContains(t, err, "log.format")

	cfgFile := writeFile(t, "config.yaml", "batch:\n  concurrency: 0\n")
	_, _, err = execute(t, "--config", cfgFile, "extract", "--text", "Python")
	assert.ErrorContains(t, err, "batch.concurrency")
}
