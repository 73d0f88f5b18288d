package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
)

func newTestExtractor(t *testing.T, opts ...Option) *Extractor {
	t.Helper()
	tax, err := taxonomy.Default()
	require.NoError(t, err)
	return NewExtractor(tax, opts...)
}

func ids(s *types.SkillSet) []string {
	return s.Strings()
}

func TestExtractText_JobDescription(t *testing.T) {
	e := newTestExtractor(t)
	got := e.ExtractText("Looking for a Python developer with experience in Flask and Django.")
	assert.Equal(t, []string{"python", "flask", "django"}, ids(got))
}

func TestExtractText_MultiWordAliasClaimsTokens(t *testing.T) {
	e := newTestExtractor(t)
	got := e.ExtractText("experienced in machine learning and c++")
	assert.Equal(t, []string{"machine_learning", "cplusplus"}, ids(got))
}

func TestExtractText_LongestMatchWins(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"three words before one", "Ruby on Rails and Ruby", []string{"ruby_on_rails", "ruby"}},
		{"two words before one", "React Native apps", []string{"react_native"}},
		{"service before cloud", "AWS Lambda on AWS", []string{"aws_lambda", "aws"}},
		{"database before language", "SQL Server and SQL", []string{"sql_server", "sql"}},
		{"hyphenated phrase", "led our go-to-market plan. Languages: Go", []string{"go_to_market", "golang"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(e.ExtractText(tt.in)))
		})
	}
}

func TestExtractText_BreaksStopWindows(t *testing.T) {
	e := newTestExtractor(t)
	assert.Empty(t, ids(e.ExtractText("machine, learning")))
	assert.Equal(t, []string{"machine_learning"}, ids(e.ExtractText("machine\nlearning")))
}

func TestExtractText_ListSeparators(t *testing.T) {
	e := newTestExtractor(t)
	got := e.ExtractText("Python, React, AWS")
	assert.Equal(t, []string{"python", "react", "aws"}, ids(got))
}

func TestExtractText_OrdinaryWordsAreNotSkills(t *testing.T) {
	e := newTestExtractor(t)

	for _, in := range []string{
		"Python and Flask engineer. Ready to go above and beyond, with a lean, C-level mindset.",
		"Plan C is ready to go.",
		"Please express interest in our lean team by spring.",
		"You will excel at steering the helm of a swift rollout.",
		"Experience with Go and Rust",
		"Oracle of the release process",
	} {
		got := ids(e.ExtractText(in))
		assert.NotContains(t, got, "golang", in)
		assert.NotContains(t, got, "c_lang", in)
		assert.NotContains(t, got, "lean_methodology", in)
		assert.NotContains(t, got, "expressjs", in)
		assert.NotContains(t, got, "spring_framework", in)
		assert.NotContains(t, got, "excel", in)
		assert.NotContains(t, got, "helm", in)
		assert.NotContains(t, got, "swift", in)
		assert.NotContains(t, got, "oracle_db", in)
	}

	assert.Equal(t, []string{"python", "flask"},
		ids(e.ExtractText("Python and Flask engineer. Ready to go above and beyond, with a lean, C-level mindset.")))
}

func TestExtractText_AmbiguousListItems(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"comma list", "Languages: Go, Rust, C", []string{"golang", "rust", "c_lang"}},
		{"line list", "Languages:\nGo\nR\nPython", []string{"golang", "r_lang", "python"}},
		{"flagged words", "Tools: Excel, Helm, Jira", []string{"excel", "helm", "jira"}},
		{"bracketed", "Mobile apps (Swift)", []string{"swift"}},
		{"slash", "Stack: C/C++", []string{"c_lang", "cplusplus"}},
		{"lowercase item", "languages: go, rust", []string{"rust"}},
		{"unambiguous alias", "Wrote golang services", []string{"golang"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(e.ExtractText(tt.in)))
		})
	}
}

func TestExtractText_VersionSuffix(t *testing.T) {
	e := newTestExtractor(t)
	raw := "Shipped python3.11 services on Java17."
	got := e.ExtractText(raw)

	require.Equal(t, []string{"python", "java"}, ids(got))
	first, ok := got.First("python")
	require.True(t, ok)
	assert.Equal(t, "python3.11", raw[first.Start:first.End])
	assert.Equal(t, "python", first.Alias)
}

func TestExtractText_DedupesWithProvenance(t *testing.T) {
	e := newTestExtractor(t)
	raw := "Python scripts. More python. PYTHON3 too."
	got := e.ExtractText(raw)

	require.Equal(t, []string{"python"}, ids(got))
	occ := got.Provenance("python")
	require.Len(t, occ, 3)
	assert.Equal(t, "Python", raw[occ[0].Start:occ[0].End])
	assert.Equal(t, "python3", occ[2].Alias)
	assert.Less(t, occ[0].Start, occ[1].Start)
}

func TestExtractText_FuzzyProvenance(t *testing.T) {
	e := newTestExtractor(t)
	got := e.ExtractText("Deployed services on Kubernetis clusters")

	require.True(t, got.Contains("kubernetes"))
	first, ok := got.First("kubernetes")
	require.True(t, ok)
	assert.Equal(t, types.ConfidenceFuzzy, first.Confidence)
	assert.Equal(t, "kubernetis", first.Surface)
	assert.Equal(t, "kubernetes", first.Alias)
}

func TestExtractText_ProtectedPunctuation(t *testing.T) {
	e := newTestExtractor(t)
	raw := "Built APIs in C#, .NET and Node.js. CI/CD via GitHub Actions."
	got := e.ExtractText(raw)

	assert.Equal(t, []string{"csharp", "dotnet", "nodejs", "ci_cd", "github_actions"}, ids(got))

	first, ok := got.First("csharp")
	require.True(t, ok)
	assert.Equal(t, "C#", raw[first.Start:first.End])
}

func TestExtractText_Empty(t *testing.T) {
	e := newTestExtractor(t)
	assert.Equal(t, 0, e.ExtractText("").Len())
	assert.Equal(t, 0, e.ExtractText(" \n\t ").Len())
}

func TestExtractText_Idempotent(t *testing.T) {
	e := newTestExtractor(t)
	text := "Senior engineer: Go, Kubernetes, Terraform, PostgreSQL, machine learning, REST APIs, Agile."

	first := e.ExtractText(text)
	second := e.ExtractText(text)
	assert.Equal(t, first.IDs(), second.IDs())
	for _, id := range first.IDs() {
		assert.Equal(t, first.Provenance(id), second.Provenance(id))
	}
}

func TestWithMaxNGram(t *testing.T) {
	e := newTestExtractor(t, WithMaxNGram(1))
	assert.Equal(t, 1, e.MaxNGram())
	assert.Empty(t, ids(e.ExtractText("machine learning")))

	e = newTestExtractor(t, WithMaxNGram(0))
	assert.Equal(t, 3, e.MaxNGram())
}
