package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTexts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

func TestNormalize_Empty(t *testing.T) {
	n := NewNormalizer(nil)
	assert.Empty(t, n.Normalize(""))
	assert.Empty(t, n.Normalize("   \n\t  "))
}

func TestNormalize_LowercasesAndStripsPunctuation(t *testing.T) {
	n := NewNormalizer(nil)
	tokens := n.Normalize("Looking for a Python developer with experience in Flask and Django.")

	assert.Equal(t, []string{
		"looking", "for", "a", "python", "developer", "with",
		"experience", "in", "flask", "and", "django",
	}, tokenTexts(tokens))
	assert.True(t, tokens[len(tokens)-1].BreakAfter)
}

func TestNormalize_ProtectedFormsKeepPunctuation(t *testing.T) {
	n := NewNormalizer([]string{"c++", "node.js", "ci/cd", "c#", ".net"})

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"trailing comma", "C++, Java", []string{"c++", "java"}},
		{"sentence end", "We use Node.js.", []string{"we", "use", "node.js"}},
		{"slash kept", "CI/CD pipelines", []string{"ci/cd", "pipelines"}},
		{"wrapped in parens", "(C#)", []string{"c#"}},
		{"leading dot", ".NET developer", []string{".net", "developer"}},
		{"slash list of protected", "C++/C#", []string{"c++", "c#"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenTexts(n.Normalize(tt.in)))
		})
	}
}

func TestNormalize_UnprotectedPunctuationIsStripped(t *testing.T) {
	n := NewNormalizer(nil)
	assert.Equal(t, []string{"c", "java"}, tokenTexts(n.Normalize("C++, Java")))
	assert.Equal(t, []string{"machine", "learning"}, tokenTexts(n.Normalize("machine-learning")))
}

func TestNormalize_OffsetsPointIntoRawText(t *testing.T) {
	raw := "Skilled in  PYTHON,\tand C++!"
	n := NewNormalizer([]string{"c++"})
	tokens := n.Normalize(raw)

	require.Len(t, tokens, 5)
	for _, tok := range tokens {
		assert.Equal(t, tok.Text, fold(raw[tok.Start:tok.End]))
	}
	assert.Equal(t, "PYTHON", raw[tokens[2].Start:tokens[2].End])
	assert.Equal(t, "C++", raw[tokens[4].Start:tokens[4].End])
}

func TestNormalize_Breaks(t *testing.T) {
	n := NewNormalizer(nil)
	tokens := n.Normalize("machine, learning\n\ndeep learning\nskills")

	require.Equal(t, []string{"machine", "learning", "deep", "learning", "skills"}, tokenTexts(tokens))
	assert.True(t, tokens[0].BreakAfter, "comma ends a phrase")
	assert.True(t, tokens[1].BreakAfter, "blank line ends a phrase")
	assert.False(t, tokens[2].BreakAfter)
	assert.False(t, tokens[3].BreakAfter, "a single line break does not")
}

func TestNormalize_InlineSeparators(t *testing.T) {
	n := NewNormalizer(nil)
	tokens := n.Normalize("Skills:Python,React|AWS")

	assert.Equal(t, []string{"skills", "python", "react", "aws"}, tokenTexts(tokens))
	assert.True(t, tokens[0].BreakAfter)
	assert.True(t, tokens[1].BreakAfter)
	assert.True(t, tokens[2].BreakAfter)
}

func TestNormalize_ListItems(t *testing.T) {
	n := NewNormalizer([]string{"c++"})
	tokens := n.Normalize("Languages: Go, C/C++ (R)\nready to go-live")

	require.Equal(t, []string{"languages", "go", "c", "c++", "r", "ready", "to", "go", "live"}, tokenTexts(tokens))
	assert.True(t, tokens[0].ItemAfter, "colon")
	assert.True(t, tokens[1].ItemAfter, "comma")
	assert.True(t, tokens[2].ItemAfter, "slash")
	assert.False(t, tokens[2].BreakAfter, "slash keeps the phrase open")
	assert.True(t, tokens[3].ItemAfter, "opening bracket")
	assert.True(t, tokens[4].ItemAfter, "line break")
	assert.False(t, tokens[5].ItemAfter)
	assert.False(t, tokens[7].ItemAfter, "hyphen joins words")
}

func TestNormalize_KeepsSurface(t *testing.T) {
	n := NewNormalizer([]string{"c#"})
	tokens := n.Normalize("Go-Live in C#.")

	require.Len(t, tokens, 4)
	assert.Equal(t, "Go", tokens[0].Surface)
	assert.Equal(t, "go", tokens[0].Text)
	assert.Equal(t, "Live", tokens[1].Surface)
	assert.Equal(t, "C#", tokens[3].Surface)
}

func TestNormalize_DropsBoilerplate(t *testing.T) {
	n := NewNormalizer(nil)
	tokens := n.Normalize("Contact jane.doe@example.com or https://example.com/jobs today")

	assert.Equal(t, []string{"contact", "or", "today"}, tokenTexts(tokens))
}

func TestNormalize_UnicodeCompatibilityForms(t *testing.T) {
	n := NewNormalizer(nil)
	// Fullwidth letters fold to ASCII.
	assert.Equal(t, []string{"python"}, tokenTexts(n.Normalize("Ｐｙｔｈｏｎ")))
}

func TestNormalizeAlias(t *testing.T) {
	assert.Equal(t, "machine learning", NormalizeAlias("  Machine   Learning "))
	assert.Equal(t, "c++", NormalizeAlias("C++"))
	assert.Equal(t, "", NormalizeAlias("   "))
}
