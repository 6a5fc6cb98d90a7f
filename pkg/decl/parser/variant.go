package parser

import (
	"strconv"
	"strings"

	"mercator-hq/rustalize/pkg/decl/ast"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"
)

// parseVariant classifies one enum variant fragment:
//
//	Name            unit variant
//	Name(A, B)      tuple payload, positional fields "0", "1", ...
//	Name { x: A }   struct-like payload, named fields (depth mode only)
//
// Payloads are returned as an anonymous struct Node. In depth mode the
// payload kind follows whichever of '(' and '{' comes first, so a struct-like
// payload may hold parenthesized types.
func (st *state) parseVariant(s span, depth int) (*ast.VariantNode, error) {
	s = s.trim()

	paren := strings.IndexByte(s.text, '(')
	if st.mode == SplitDepth {
		brace := strings.IndexByte(s.text, '{')
		closing := strings.LastIndexByte(s.text, '}')
		if brace >= 0 && closing >= 0 && (paren < 0 || brace < paren) {
			return st.payloadVariant(s, brace, closing, depth, st.parseFields)
		}
	}

	if closing := strings.LastIndexByte(s.text, ')'); paren >= 0 && closing >= 0 {
		return st.payloadVariant(s, paren, closing, depth, st.tuplePayload)
	}

	return &ast.VariantNode{Name: s.text}, nil
}

// payloadVariant builds a variant whose payload lies between open and
// closing, parsing the payload with fields.
func (st *state) payloadVariant(s span, open, closing, depth int, fields func(span, int) ([]*ast.FieldNode, error)) (*ast.VariantNode, error) {
	name := s.sub(0, open).trim()
	if name.text == "" {
		err := st.fail(declErrors.ErrorTypeMissingName, s, "Variant payload without a name: %q", shorten(s.text))
		err.Construct = "enum"
		return nil, err
	}
	if closing < open {
		err := st.fail(declErrors.ErrorTypeInvalidBody, s.from(closing), "Invalid variant payload: %q", shorten(s.text))
		err.Construct = "enum"
		return nil, err
	}

	payload, err := fields(s.sub(open+1, closing).trim(), depth+1)
	if err != nil {
		return nil, declErrors.Frame(err, "variant %q", name.text)
	}

	return &ast.VariantNode{
		Name: name.text,
		Data: ast.NewStruct(&ast.StructNode{Fields: payload}),
	}, nil
}

// tuplePayload parses "A, B" into positional fields "0", "1", ...
func (st *state) tuplePayload(s span, depth int) ([]*ast.FieldNode, error) {
	var fields []*ast.FieldNode
	for i, frag := range st.split(s, ',') {
		t, err := st.parseType(frag, depth)
		if err != nil {
			return nil, declErrors.Frame(err, "field %q", strconv.Itoa(i))
		}
		fields = append(fields, &ast.FieldNode{Name: strconv.Itoa(i), Type: t})
	}
	return fields, nil
}
