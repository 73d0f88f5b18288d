package parsing

import "strings"

// NGram is a window of consecutive tokens joined by single spaces.
type NGram struct {
	Text  string
	Pos   int // index of the first token
	Size  int // number of tokens
	Start int // byte offset of the first token in the raw text
	End   int // byte offset just past the last token
}

// Window returns the n-token window starting at pos. It reports false when the
// window runs past the end of tokens or crosses a break.
func Window(tokens []Token, pos, n int) (NGram, bool) {
	if n <= 0 || pos < 0 || pos+n > len(tokens) {
		return NGram{}, false
	}
	for k := pos; k < pos+n-1; k++ {
		if tokens[k].BreakAfter {
			return NGram{}, false
		}
	}

	if n == 1 {
		t := tokens[pos]
		return NGram{Text: t.Text, Pos: pos, Size: 1, Start: t.Start, End: t.End}, true
	}

	parts := make([]string, n)
	for k := 0; k < n; k++ {
		parts[k] = tokens[pos+k].Text
	}
	return NGram{
		Text:  strings.Join(parts, " "),
		Pos:   pos,
		Size:  n,
		Start: tokens[pos].Start,
		End:   tokens[pos+n-1].End,
	}, true
}

// NGrams returns every valid window of size 1..maxN, ordered by position and,
// within a position, longest first.
func NGrams(tokens []Token, maxN int) []NGram {
	if maxN <= 0 {
		maxN = DefaultMaxNGram
	}
	out := make([]NGram, 0, len(tokens)*maxN)
	for pos := range tokens {
		for n := maxN; n >= 1; n-- {
			if w, ok := Window(tokens, pos, n); ok {
				out = append(out, w)
			}
		}
	}
	return out
}
