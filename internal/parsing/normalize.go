// Package parsing turns free text into normalized tokens and n-gram windows for skill extraction.
package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxNGram is the widest window the extractor scans by default.
const DefaultMaxNGram = 3

// Token is one normalized word with its byte span in the raw text.
type Token struct {
	Text string
	// Surface is the word as written, before folding.
	Surface string
	Start   int
	End     int
	// BreakAfter marks sentence or list punctuation (or a blank line) after the token.
	// Windows never span a break.
	BreakAfter bool
	// ItemAfter marks a list delimiter after the token: a list separator,
	// a slash, a bracket or a line break.
	ItemAfter bool
}

// Normalizer lowercases and tokenizes text. Words listed as protected keep their
// punctuation ("c++", "node.js", "ci/cd") instead of being split or trimmed.
// A Normalizer is immutable and safe for concurrent use.
type Normalizer struct {
	protected map[string]struct{}
}

// NewNormalizer creates a Normalizer that keeps the given surface forms intact.
func NewNormalizer(protected []string) *Normalizer {
	set := make(map[string]struct{}, len(protected))
	for _, p := range protected {
		p = fold(strings.TrimSpace(p))
		if p != "" {
			set[p] = struct{}{}
		}
	}
	return &Normalizer{protected: set}
}

// Normalize splits raw text into tokens. Empty input yields an empty slice.
func (n *Normalizer) Normalize(raw string) []Token {
	tokens := make([]Token, 0, len(raw)/6)

	i := 0
	for i < len(raw) {
		r, size := utf8.DecodeRuneInString(raw[i:])
		if unicode.IsSpace(r) {
			newlines := 0
			for i < len(raw) {
				r, size = utf8.DecodeRuneInString(raw[i:])
				if !unicode.IsSpace(r) {
					break
				}
				if r == '\n' {
					newlines++
				}
				i += size
			}
			if newlines > 0 {
				markItem(tokens)
			}
			if newlines > 1 {
				markBreak(tokens)
			}
			continue
		}

		start := i
		for i < len(raw) {
			r, size = utf8.DecodeRuneInString(raw[i:])
			if unicode.IsSpace(r) {
				break
			}
			i += size
		}
		tokens = n.appendChunk(tokens, raw, start, i)
	}

	return tokens
}

// appendChunk tokenizes one whitespace-delimited chunk raw[start:end].
func (n *Normalizer) appendChunk(tokens []Token, raw string, start, end int) []Token {
	chunk := raw[start:end]
	lead, trail := trimBounds(chunk)
	breakAfter := strings.ContainsAny(chunk[trail:], sentencePunct)
	itemAfter := strings.ContainsAny(chunk[trail:], itemTrailPunct)

	if lead >= trail {
		if strings.ContainsAny(chunk, itemLeadPunct+itemTrailPunct) {
			markItem(tokens)
		}
		if breakAfter {
			markBreak(tokens)
		}
		return tokens
	}
	if strings.ContainsAny(chunk[:lead], itemLeadPunct) {
		markItem(tokens)
	}

	core := chunk[lead:trail]
	folded := fold(core)

	if isBoilerplate(folded) {
		markItem(tokens)
		markBreak(tokens)
		return tokens
	}

	if n.isProtected(folded) {
		return append(tokens, Token{
			Text:       folded,
			Surface:    core,
			Start:      start + lead,
			End:        start + trail,
			BreakAfter: breakAfter,
			ItemAfter:  itemAfter,
		})
	}

	offset := start + lead
	pieceStart := -1
	for j, r := range core {
		if isSeparator(r) {
			if pieceStart >= 0 {
				tokens = n.appendPiece(tokens, core[pieceStart:j], offset+pieceStart)
				pieceStart = -1
			}
			if isListSeparator(r) {
				markBreak(tokens)
			}
			if isListSeparator(r) || r == '/' {
				markItem(tokens)
			}
			continue
		}
		if pieceStart < 0 {
			pieceStart = j
		}
	}
	if pieceStart >= 0 {
		tokens = n.appendPiece(tokens, core[pieceStart:], offset+pieceStart)
	}

	if itemAfter {
		markItem(tokens)
	}
	if breakAfter {
		markBreak(tokens)
	}
	return tokens
}

// appendPiece adds a separator-free fragment, trimming non-alphanumeric edges
// unless the fragment is a protected surface form.
func (n *Normalizer) appendPiece(tokens []Token, piece string, start int) []Token {
	if folded := fold(piece); n.isProtected(folded) {
		return append(tokens, Token{Text: folded, Surface: piece, Start: start, End: start + len(piece)})
	}

	lo := strings.IndexFunc(piece, isWordRune)
	if lo < 0 {
		return tokens
	}
	hi := strings.LastIndexFunc(piece, isWordRune)
	_, size := utf8.DecodeRuneInString(piece[hi:])
	hi += size

	text := fold(piece[lo:hi])
	if text == "" {
		return tokens
	}
	return append(tokens, Token{Text: text, Surface: piece[lo:hi], Start: start + lo, End: start + hi})
}

func (n *Normalizer) isProtected(s string) bool {
	_, ok := n.protected[s]
	return ok
}

// NormalizeAlias canonicalizes a taxonomy alias the same way Normalize
// canonicalizes text: NFKC, lowercase, single spaces between words.
func NormalizeAlias(alias string) string {
	return strings.Join(strings.Fields(fold(alias)), " ")
}

// fold applies compatibility normalization and lowercasing.
func fold(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

const (
	leadPunct     = "([{<\"'`*•·-–—"
	trailPunct    = ".,;:!?)]}>\"'`…"
	sentencePunct = ".,;:!?…"

	itemLeadPunct  = "([{•·*-–—"
	itemTrailPunct = ",;:)]}"
)

// trimBounds returns the byte range of chunk left after stripping wrapping punctuation.
func trimBounds(chunk string) (int, int) {
	lo := 0
	for lo < len(chunk) {
		r, size := utf8.DecodeRuneInString(chunk[lo:])
		if !strings.ContainsRune(leadPunct, r) {
			break
		}
		lo += size
	}
	hi := len(chunk)
	for hi > lo {
		r, size := utf8.DecodeLastRuneInString(chunk[lo:hi])
		if !strings.ContainsRune(trailPunct, r) {
			break
		}
		hi -= size
	}
	return lo, hi
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSeparator(r rune) bool {
	switch r {
	case ',', ';', '/', '|', '(', ')', '[', ']', '{', '}', '"', ':', '-', '•', '·':
		return true
	}
	return false
}

// isListSeparator reports separators that end a phrase, unlike '/' or '-'.
func isListSeparator(r rune) bool {
	switch r {
	case ',', ';', '|', ':', '•', '·', '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

func isBoilerplate(s string) bool {
	if strings.Contains(s, "://") || strings.HasPrefix(s, "www.") {
		return true
	}
	at := strings.IndexByte(s, '@')
	return at > 0 && strings.Contains(s[at:], ".")
}

func markBreak(tokens []Token) {
	if len(tokens) > 0 {
		tokens[len(tokens)-1].BreakAfter = true
	}
}

func markItem(tokens []Token) {
	if len(tokens) > 0 {
		tokens[len(tokens)-1].ItemAfter = true
	}
}
