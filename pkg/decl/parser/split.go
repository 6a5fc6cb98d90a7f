package parser

import (
	"strings"
	"unicode"
)

// SplitMode selects how member lists are divided on separator characters.
type SplitMode string

const (
	// SplitDepth ignores separators nested inside (), [], {}, or <>.
	SplitDepth SplitMode = "depth"

	// SplitNaive splits on every separator character, regardless of nesting.
	// A struct-like or multi-field tuple variant, or a field whose type has
	// two generic arguments, is mis-segmented in this mode.
	SplitNaive SplitMode = "naive"
)

// IsValid returns true for a known split mode.
func (m SplitMode) IsValid() bool {
	return m == SplitDepth || m == SplitNaive
}

// span is a fragment of the source together with the byte offset of its
// first character, so errors can point back into the original text.
type span struct {
	text string
	off  int
}

// trim removes surrounding whitespace, keeping the offset aligned.
func (s span) trim() span {
	left := strings.TrimLeftFunc(s.text, unicode.IsSpace)
	return span{
		text: strings.TrimRightFunc(left, unicode.IsSpace),
		off:  s.off + len(s.text) - len(left),
	}
}

// sub returns text[i:j].
func (s span) sub(i, j int) span {
	return span{text: s.text[i:j], off: s.off + i}
}

// from returns text[i:].
func (s span) from(i int) span {
	return span{text: s.text[i:], off: s.off + i}
}

// split divides s on sep and returns the trimmed, non-empty pieces.
func (st *state) split(s span, sep byte) []span {
	var parts []span
	emit := func(piece span) {
		if piece = piece.trim(); piece.text != "" {
			parts = append(parts, piece)
		}
	}

	start := 0
	depth := 0
	for i := 0; i < len(s.text); i++ {
		c := s.text[i]
		if c == sep && (depth == 0 || st.mode == SplitNaive) {
			emit(s.sub(start, i))
			start = i + 1
			continue
		}
		if st.mode == SplitNaive {
			continue
		}
		depth = nest(s.text, i, depth)
	}
	emit(s.from(start))

	return parts
}

// nest updates the bracket depth for the character at text[i]. The '>' of
// an arrow ("->") is not a closing bracket.
func nest(text string, i, depth int) int {
	switch text[i] {
	case '(', '[', '{', '<':
		return depth + 1
	case '>':
		if i > 0 && text[i-1] == '-' {
			return depth
		}
		fallthrough
	case ')', ']', '}':
		if depth > 0 {
			return depth - 1
		}
	}
	return depth
}

// splitPair divides a "name: Type" fragment on its single separating colon.
// In depth mode a path separator ("::") and colons nested in brackets do not
// count. ok is false unless there is exactly one separating colon.
func (st *state) splitPair(s span) (name, typ span, ok bool) {
	colon := -1
	depth := 0
	for i := 0; i < len(s.text); i++ {
		c := s.text[i]
		if st.mode == SplitDepth {
			if c == ':' && (isPathColon(s.text, i) || depth > 0) {
				continue
			}
			depth = nest(s.text, i, depth)
		}
		if c != ':' {
			continue
		}
		if colon >= 0 {
			return span{}, span{}, false
		}
		colon = i
	}
	if colon < 0 {
		return span{}, span{}, false
	}
	return s.sub(0, colon).trim(), s.from(colon + 1).trim(), true
}

// isPathColon reports whether the colon at text[i] is half of "::".
func isPathColon(text string, i int) bool {
	return (i > 0 && text[i-1] == ':') || (i+1 < len(text) && text[i+1] == ':')
}

// closingParen returns the index of the ')' that closes the '(' at open, or
// -1. In naive mode it is simply the next ')'.
func (st *state) closingParen(text string, open int) int {
	if st.mode == SplitNaive {
		if i := strings.IndexByte(text[open:], ')'); i >= 0 {
			return open + i
		}
		return -1
	}

	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
