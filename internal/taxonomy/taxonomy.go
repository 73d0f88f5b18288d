// Package taxonomy holds the canonical skill vocabulary and resolves surface
// forms (aliases, abbreviations, near misses) to skill IDs.
package taxonomy

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// DefaultFuzzyThreshold is the minimum similarity accepted by fuzzy lookup.
	DefaultFuzzyThreshold = 0.85
	// DefaultMinFuzzyLength is the shortest query (in runes) eligible for fuzzy lookup.
	DefaultMinFuzzyLength = 5

	// shortNameLength is the longest alphabetic implicit form (ID or display
	// name) treated as ambiguous without an explicit flag: "Go", "C", "R".
	shortNameLength = 2
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_]*$`)

// Entry is one skill of the taxonomy.
//
// The ID and display name are implicit aliases. Ambiguous marks single-word
// implicit forms that are also ordinary words ("Swift", "Excel"); those, and
// any implicit form of one or two letters, are ambiguous aliases. Listed
// Aliases are never ambiguous.
type Entry struct {
	ID        types.SkillID `json:"id"`
	Name      string        `json:"name"`
	Category  string        `json:"category"`
	Aliases   []string      `json:"aliases,omitempty"`
	Ambiguous bool          `json:"ambiguous,omitempty"`
}

// Document is the on-disk form of a taxonomy.
type Document struct {
	Version string  `json:"version"`
	Skills  []Entry `json:"skills"`
}

// Option configures a Taxonomy at build time.
type Option func(*settings)

type settings struct {
	fuzzy          bool
	fuzzyThreshold float64
	minFuzzyLength int
	maxAliasWords  int
}

// WithoutFuzzy disables the fuzzy layer; only exact alias lookups resolve.
func WithoutFuzzy() Option {
	return func(s *settings) { s.fuzzy = false }
}

// WithFuzzyThreshold sets the minimum similarity for fuzzy matches.
// Values outside (0, 1] disable fuzzy lookup.
func WithFuzzyThreshold(v float64) Option {
	return func(s *settings) {
		if v <= 0 || v > 1 {
			s.fuzzy = false
			return
		}
		s.fuzzyThreshold = v
	}
}

// WithMinFuzzyLength sets the shortest query eligible for fuzzy lookup.
func WithMinFuzzyLength(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.minFuzzyLength = n
		}
	}
}

// WithMaxAliasWords rejects aliases longer than n words, the widest window the
// extractor scans. Zero or less disables the check.
func WithMaxAliasWords(n int) Option {
	return func(s *settings) { s.maxAliasWords = n }
}

// Taxonomy is an immutable skill vocabulary. It is safe for concurrent use.
type Taxonomy struct {
	version  string
	settings settings

	entries   []Entry
	index     map[types.SkillID]int
	aliases   map[string]types.SkillID
	ambiguous map[string]types.SkillID
	byLength  map[int][]string
	protected []string
}

// New builds a taxonomy from entries. Each entry's ID and display name are
// aliases in addition to its listed aliases; short or flagged ones are
// registered as ambiguous.
func New(version string, entries []Entry, opts ...Option) (*Taxonomy, error) {
	s := settings{
		fuzzy:          true,
		fuzzyThreshold: DefaultFuzzyThreshold,
		minFuzzyLength: DefaultMinFuzzyLength,
		maxAliasWords:  parsing.DefaultMaxNGram,
	}
	for _, opt := range opts {
		opt(&s)
	}

	t := &Taxonomy{
		version:   version,
		settings:  s,
		entries:   make([]Entry, 0, len(entries)),
		index:     make(map[types.SkillID]int, len(entries)),
		aliases:   make(map[string]types.SkillID, len(entries)*4),
		ambiguous: make(map[string]types.SkillID),
		byLength:  make(map[int][]string),
	}

	for i, e := range entries {
		if e.ID == "" || !idPattern.MatchString(string(e.ID)) {
			return nil, &LoadError{Message: fmt.Sprintf("entry %d: invalid skill id %q", i, e.ID)}
		}
		if _, dup := t.index[e.ID]; dup {
			return nil, &LoadError{Message: fmt.Sprintf("duplicate skill id %q", e.ID)}
		}
		if strings.TrimSpace(e.Name) == "" {
			e.Name = string(e.ID)
		}

		for _, form := range e.Aliases {
			if err := t.register(e.ID, form, false); err != nil {
				return nil, err
			}
		}
		for _, form := range []string{string(e.ID), e.Name} {
			if err := t.register(e.ID, form, isAmbiguousForm(e, form)); err != nil {
				return nil, err
			}
		}

		t.index[e.ID] = len(t.entries)
		t.entries = append(t.entries, copyEntry(e))
	}

	protected := make(map[string]struct{})
	for key := range t.aliases {
		n := utf8.RuneCountInString(key)
		t.byLength[n] = append(t.byLength[n], key)
		addProtected(protected, key)
	}
	for key := range t.ambiguous {
		addProtected(protected, key)
	}
	for _, bucket := range t.byLength {
		sort.Strings(bucket)
	}
	t.protected = make([]string, 0, len(protected))
	for word := range protected {
		t.protected = append(t.protected, word)
	}
	sort.Strings(t.protected)

	return t, nil
}

// register adds one surface form of id. A form already owned by id is
// skipped; a form owned by another skill is a conflict.
func (t *Taxonomy) register(id types.SkillID, form string, ambiguous bool) error {
	key := parsing.NormalizeAlias(form)
	if key == "" {
		return &LoadError{Message: fmt.Sprintf("skill %q: alias %q is empty after normalization", id, form)}
	}
	if words := len(strings.Fields(key)); t.settings.maxAliasWords > 0 && words > t.settings.maxAliasWords {
		return &LoadError{Message: fmt.Sprintf("skill %q: alias %q has %d words, extraction windows span at most %d",
			id, form, words, t.settings.maxAliasWords)}
	}

	owner, ok := t.aliases[key]
	if !ok {
		owner, ok = t.ambiguous[key]
	}
	if ok {
		if owner == id {
			return nil
		}
		return &LoadError{
			Message: "conflicting aliases",
			Cause:   &DuplicateAliasError{Alias: key, First: owner, Second: id},
		}
	}

	if ambiguous {
		t.ambiguous[key] = id
	} else {
		t.aliases[key] = id
	}
	return nil
}

func isAmbiguousForm(e Entry, form string) bool {
	key := parsing.NormalizeAlias(form)
	if utf8.RuneCountInString(key) <= shortNameLength && !strings.ContainsFunc(key, notLetter) {
		return true
	}
	return e.Ambiguous && !strings.Contains(key, " ")
}

func addProtected(protected map[string]struct{}, key string) {
	for _, word := range strings.Fields(key) {
		if strings.IndexFunc(word, notWordRune) >= 0 {
			protected[word] = struct{}{}
		}
	}
}

// Version returns the taxonomy version string.
func (t *Taxonomy) Version() string { return t.version }

// Len returns the number of skills.
func (t *Taxonomy) Len() int { return len(t.entries) }

// Entry returns a copy of the skill with the given ID.
func (t *Taxonomy) Entry(id types.SkillID) (Entry, bool) {
	i, ok := t.index[id]
	if !ok {
		return Entry{}, false
	}
	return copyEntry(t.entries[i]), true
}

// Entries returns a copy of all skills in build order.
func (t *Taxonomy) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = copyEntry(e)
	}
	return out
}

// Name returns the display name of id, or the id itself when unknown.
func (t *Taxonomy) Name(id types.SkillID) string {
	if i, ok := t.index[id]; ok {
		return t.entries[i].Name
	}
	return string(id)
}

// Category returns the category of id.
func (t *Taxonomy) Category(id types.SkillID) (string, bool) {
	i, ok := t.index[id]
	if !ok {
		return "", false
	}
	return t.entries[i].Category, true
}

// ProtectedAliases returns the alias words that carry punctuation and must
// survive tokenization intact, sorted.
func (t *Taxonomy) ProtectedAliases() []string {
	out := make([]string, len(t.protected))
	copy(out, t.protected)
	return out
}

// FuzzyEnabled reports whether near-miss lookups are active.
func (t *Taxonomy) FuzzyEnabled() bool { return t.settings.fuzzy }

func copyEntry(e Entry) Entry {
	if e.Aliases != nil {
		aliases := make([]string, len(e.Aliases))
		copy(aliases, e.Aliases)
		e.Aliases = aliases
	}
	return e
}

func notLetter(r rune) bool { return !unicode.IsLetter(r) }

func notWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
