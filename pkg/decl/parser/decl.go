package parser

import (
	"strings"

	"mercator-hq/rustalize/pkg/decl/ast"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"
)

// header is the located name and body of a trait, struct, or enum declaration.
type header struct {
	name span
	body span
}

// declHeader extracts the declaration name (third whitespace-separated token)
// and the body between the first '{' and the last '}'.
func (st *state) declHeader(s span, construct string) (header, error) {
	name, ok := thirdToken(s)
	if !ok {
		err := st.fail(declErrors.ErrorTypeMissingName, s, "Invalid %s definition", construct)
		err.Construct = construct
		err.Suggestion = "Name the declaration: 'pub " + construct + " Name { ... }'"
		return header{}, err
	}

	open := strings.IndexByte(s.text, '{')
	if open < 0 {
		err := st.fail(declErrors.ErrorTypeMissingBody, s, "Missing %s body", construct)
		err.Construct = construct
		return header{}, err
	}
	closing := strings.LastIndexByte(s.text, '}')
	if closing < 0 {
		err := st.fail(declErrors.ErrorTypeMissingClosingBrace, s.from(open), "Missing closing brace")
		err.Construct = construct
		return header{}, err
	}
	if closing <= open {
		err := st.fail(declErrors.ErrorTypeInvalidBody, s.from(closing), "Invalid %s body", construct)
		err.Construct = construct
		return header{}, err
	}

	return header{name: name, body: s.sub(open+1, closing).trim()}, nil
}

// thirdToken returns the third whitespace-separated token of s, cut at the
// first '{', '<' or '('.
func thirdToken(s span) (span, bool) {
	i := 0
	for n := 0; n < 3; n++ {
		for i < len(s.text) && isSpace(s.text[i]) {
			i++
		}
		if i == len(s.text) {
			return span{}, false
		}
		start := i
		for i < len(s.text) && !isSpace(s.text[i]) {
			i++
		}
		if n < 2 {
			continue
		}
		tok := s.sub(start, i)
		if cut := strings.IndexAny(tok.text, "{<("); cut >= 0 {
			tok = tok.sub(0, cut)
		}
		return tok, tok.text != ""
	}
	return span{}, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// parseTrait parses "pub trait Name { fn a(...) -> T; ... }".
func (st *state) parseTrait(s span) (*ast.Node, error) {
	h, err := st.declHeader(s, "trait")
	if err != nil {
		return nil, err
	}

	trait := &ast.TraitNode{Name: h.name.text}
	for _, frag := range st.split(h.body, ';') {
		method, err := st.parseMethod(frag)
		if err != nil {
			return nil, declErrors.Frame(err, "trait %q", trait.Name)
		}
		trait.Methods = append(trait.Methods, method)
	}
	return ast.NewTrait(trait), nil
}

// parseStruct parses "pub struct Name { a: T, ... }".
func (st *state) parseStruct(s span) (*ast.Node, error) {
	h, err := st.declHeader(s, "struct")
	if err != nil {
		return nil, err
	}

	fields, err := st.parseFields(h.body, 0)
	if err != nil {
		return nil, declErrors.Frame(err, "struct %q", h.name.text)
	}
	return ast.NewStruct(&ast.StructNode{Name: h.name.text, Fields: fields}), nil
}

// parseEnum parses "pub enum Name { A, B(T), C { x: T }, ... }".
func (st *state) parseEnum(s span) (*ast.Node, error) {
	h, err := st.declHeader(s, "enum")
	if err != nil {
		return nil, err
	}

	enum := &ast.EnumNode{Name: h.name.text}
	for _, frag := range st.split(h.body, ',') {
		variant, err := st.parseVariant(frag, 0)
		if err != nil {
			return nil, declErrors.Frame(err, "enum %q", enum.Name)
		}
		enum.Variants = append(enum.Variants, variant)
	}
	return ast.NewEnum(enum), nil
}
