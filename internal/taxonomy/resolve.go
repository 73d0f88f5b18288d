package taxonomy

import (
	"math"
	"regexp"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// similarityEpsilon absorbs float error at the threshold boundary (e.g. 1-3/20 vs 0.85).
const similarityEpsilon = 1e-9

// versionSuffix splits a trailing version number off a word: "python3.11",
// "java17", "c++17".
var versionSuffix = regexp.MustCompile(`^(.*[\p{L}+#])\d+(?:\.\d+)*$`)

// minVersionedStem is the shortest stem left after dropping a version.
const minVersionedStem = 2

// Match is the outcome of a successful lookup.
type Match struct {
	ID         types.SkillID
	Alias      string // normalized alias that matched
	Confidence types.Confidence
	Similarity float64 // 1 for exact matches
	// Ambiguous is set when Alias is also an ordinary word ("go", "c").
	// Callers scanning prose decide from context whether to accept it.
	Ambiguous bool
}

// Resolve maps a surface form to a skill ID.
func (t *Taxonomy) Resolve(s string) (types.SkillID, bool) {
	m, ok := t.Lookup(s)
	return m.ID, ok
}

// Lookup resolves s exactly when possible and falls back to fuzzy matching.
// A trailing version number is dropped when the full form is unknown.
// Fuzzy candidates are ranked by similarity, then by the lexicographically
// smaller alias.
func (t *Taxonomy) Lookup(s string) (Match, bool) {
	key := parsing.NormalizeAlias(s)
	if key == "" {
		return Match{}, false
	}
	if m, ok := t.exact(key); ok {
		return m, true
	}
	if sub := versionSuffix.FindStringSubmatch(key); sub != nil && utf8.RuneCountInString(sub[1]) >= minVersionedStem {
		if m, ok := t.exact(sub[1]); ok {
			return m, true
		}
	}
	if !t.settings.fuzzy {
		return Match{}, false
	}
	return t.fuzzy(key)
}

func (t *Taxonomy) exact(key string) (Match, bool) {
	if id, ok := t.aliases[key]; ok {
		return Match{ID: id, Alias: key, Confidence: types.ConfidenceExact, Similarity: 1}, true
	}
	if id, ok := t.ambiguous[key]; ok {
		return Match{ID: id, Alias: key, Confidence: types.ConfidenceExact, Similarity: 1, Ambiguous: true}, true
	}
	return Match{}, false
}

func (t *Taxonomy) fuzzy(key string) (Match, bool) {
	n := utf8.RuneCountInString(key)
	if n < t.settings.minFuzzyLength {
		return Match{}, false
	}

	// Lengths outside [th*n, n/th] cannot reach the threshold.
	th := t.settings.fuzzyThreshold
	lo := int(math.Ceil(th*float64(n) - similarityEpsilon))
	hi := int(math.Floor(float64(n)/th + similarityEpsilon))
	if lo < t.settings.minFuzzyLength {
		lo = t.settings.minFuzzyLength
	}

	var best Match
	found := false
	for m := lo; m <= hi; m++ {
		for _, alias := range t.byLength[m] {
			d := levenshtein.ComputeDistance(key, alias)
			sim := 1 - float64(d)/float64(max(n, m))
			if sim+similarityEpsilon < th {
				continue
			}
			if !found || sim > best.Similarity+similarityEpsilon ||
				(math.Abs(sim-best.Similarity) <= similarityEpsilon && alias < best.Alias) {
				best = Match{ID: t.aliases[alias], Alias: alias, Confidence: types.ConfidenceFuzzy, Similarity: sim}
				found = true
			}
		}
	}
	return best, found
}
