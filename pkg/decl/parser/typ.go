package parser

import (
	"strings"

	"mercator-hq/rustalize/pkg/decl/ast"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"
)

// parseType parses a type expression. Prefixes are checked in order:
//
//	&T          reference
//	[T]         array/slice, Generic "[]" with one argument
//	Name<A, B>  generic application
//	Name        simple
func (st *state) parseType(s span, depth int) (*ast.TypeNode, error) {
	s = s.trim()

	if depth > st.maxDepth {
		return nil, st.depthError(s)
	}
	if s.text == "" {
		err := st.fail(declErrors.ErrorTypeInvalidType, s, "Empty type expression")
		err.Suggestion = "Write a type after ':', e.g. 'x: i32'"
		return nil, err
	}

	switch {
	case s.text[0] == '&':
		elem, err := st.parseType(s.from(1), depth+1)
		if err != nil {
			return nil, err
		}
		return ast.Reference(elem), nil

	case len(s.text) >= 2 && s.text[0] == '[' && s.text[len(s.text)-1] == ']':
		elem, err := st.parseType(s.sub(1, len(s.text)-1), depth+1)
		if err != nil {
			return nil, err
		}
		return ast.Slice(elem), nil

	case strings.Contains(s.text, "<") && strings.Contains(s.text, ">"):
		return st.parseGeneric(s, depth)
	}

	return ast.Simple(s.text), nil
}

// parseGeneric parses "Name<A, B>". Exactly one trailing '>' is stripped so
// nested applications such as Vec<Vec<i32>> keep their inner brackets.
func (st *state) parseGeneric(s span, depth int) (*ast.TypeNode, error) {
	lt := strings.IndexByte(s.text, '<')
	name := s.sub(0, lt).trim()
	if name.text == "" {
		err := st.fail(declErrors.ErrorTypeInvalidType, s, "Generic type without a name: %q", shorten(s.text))
		return nil, err
	}

	args := s.from(lt + 1).trim()
	args.text = strings.TrimSuffix(args.text, ">")

	parts := st.split(args, ',')
	if len(parts) == 0 {
		err := st.fail(declErrors.ErrorTypeInvalidType, s, "Generic type %q has no arguments", name.text)
		return nil, err
	}

	typ := ast.Generic(name.text)
	for _, part := range parts {
		arg, err := st.parseType(part, depth+1)
		if err != nil {
			return nil, err
		}
		typ.Args = append(typ.Args, arg)
	}
	return typ, nil
}

// depthError reports nesting deeper than the configured maximum.
func (st *state) depthError(s span) *declErrors.Error {
	err := st.fail(declErrors.ErrorTypeDepthExceeded, s, "Nesting exceeds maximum depth %d", st.maxDepth)
	err.Suggestion = "Increase parser.max_depth or simplify the declaration"
	return err
}
