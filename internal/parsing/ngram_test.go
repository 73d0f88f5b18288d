package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	tokens := NewNormalizer(nil).Normalize("experienced in machine learning")

	w, ok := Window(tokens, 2, 2)
	require.True(t, ok)
	assert.Equal(t, "machine learning", w.Text)
	assert.Equal(t, 2, w.Pos)
	assert.Equal(t, 2, w.Size)
	assert.Equal(t, tokens[2].Start, w.Start)
	assert.Equal(t, tokens[3].End, w.End)

	_, ok = Window(tokens, 3, 2)
	assert.False(t, ok, "window past the end")

	_, ok = Window(tokens, 0, 0)
	assert.False(t, ok)
}

func TestWindow_DoesNotCrossBreak(t *testing.T) {
	tokens := NewNormalizer(nil).Normalize("machine, learning")

	_, ok := Window(tokens, 0, 2)
	assert.False(t, ok)

	w, ok := Window(tokens, 0, 1)
	require.True(t, ok)
	assert.Equal(t, "machine", w.Text)
}

func TestNGrams_LongestFirstPerPosition(t *testing.T) {
	tokens := NewNormalizer(nil).Normalize("a b c")
	grams := NGrams(tokens, 3)

	texts := make([]string, len(grams))
	for i, g := range grams {
		texts[i] = g.Text
	}
	assert.Equal(t, []string{"a b c", "a b", "a", "b c", "b", "c"}, texts)
}

func TestNGrams_DefaultSize(t *testing.T) {
	tokens := NewNormalizer(nil).Normalize("one two three four")
	grams := NGrams(tokens, 0)

	for _, g := range grams {
		assert.LessOrEqual(t, g.Size, DefaultMaxNGram)
	}
	assert.Len(t, grams, 3+3+2+1)
}
