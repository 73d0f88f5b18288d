// Package skills extracts canonical skills from normalized text.
package skills

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Resolver maps n-gram text to taxonomy skills.
// *taxonomy.Taxonomy satisfies it.
type Resolver interface {
	Lookup(s string) (taxonomy.Match, bool)
	ProtectedAliases() []string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxNGram sets the widest window tried at each position.
func WithMaxNGram(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxNGram = n
		}
	}
}

// Extractor scans tokens left to right and claims the longest window that
// resolves at each position. It holds no mutable state and is safe for
// concurrent use.
type Extractor struct {
	resolver   Resolver
	normalizer *parsing.Normalizer
	maxNGram   int
}

// NewExtractor creates an Extractor whose normalizer protects the resolver's
// punctuated aliases.
func NewExtractor(resolver Resolver, opts ...Option) *Extractor {
	e := &Extractor{
		resolver:   resolver,
		normalizer: parsing.NewNormalizer(resolver.ProtectedAliases()),
		maxNGram:   parsing.DefaultMaxNGram,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxNGram returns the widest window tried at each position.
func (e *Extractor) MaxNGram() int { return e.maxNGram }

// Normalizer returns the normalizer used by ExtractText.
func (e *Extractor) Normalizer() *parsing.Normalizer { return e.normalizer }

// Extract resolves tokens into a SkillSet. At each position windows are tried
// from MaxNGram down to 1; the first that resolves consumes its tokens.
// Ambiguous aliases count only as a capitalized list item, so "Go, Rust"
// yields golang but "ready to go" does not. A skill seen again only gains
// provenance.
func (e *Extractor) Extract(tokens []parsing.Token) *types.SkillSet {
	set := types.NewSkillSet()

	pos := 0
	for pos < len(tokens) {
		step := 1
		for n := e.maxNGram; n >= 1; n-- {
			w, ok := parsing.Window(tokens, pos, n)
			if !ok {
				continue
			}
			m, ok := e.resolver.Lookup(w.Text)
			if !ok {
				continue
			}
			if m.Ambiguous && !listItem(tokens, pos, n) {
				continue
			}
			set.Add(types.ExtractedSkill{
				ID:         m.ID,
				Alias:      m.Alias,
				Surface:    w.Text,
				Start:      w.Start,
				End:        w.End,
				Confidence: m.Confidence,
			})
			step = n
			break
		}
		pos += step
	}

	return set
}

// ExtractText normalizes raw text and extracts its skills.
func (e *Extractor) ExtractText(raw string) *types.SkillSet {
	return e.Extract(e.normalizer.Normalize(raw))
}

// listItem reports whether tokens[pos:pos+n] stand alone between list
// delimiters and are written with a capital letter.
func listItem(tokens []parsing.Token, pos, n int) bool {
	if pos > 0 && !tokens[pos-1].ItemAfter {
		return false
	}
	last := tokens[pos+n-1]
	if pos+n < len(tokens) && !last.ItemAfter && !last.BreakAfter {
		return false
	}
	for _, tok := range tokens[pos : pos+n] {
		if strings.IndexFunc(tok.Surface, unicode.IsUpper) >= 0 {
			return true
		}
	}
	return false
}
