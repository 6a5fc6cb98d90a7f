package parser

import (
	"strings"

	"mercator-hq/rustalize/pkg/decl/ast"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"
)

// parseMethod parses one trait method signature: "fn name(params) -> T".
func (st *state) parseMethod(s span) (*ast.MethodNode, error) {
	s = s.trim()

	open := strings.IndexByte(s.text, '(')
	if open < 0 {
		err := st.fail(declErrors.ErrorTypeInvalidMethodName, s, "Invalid method format: %q", shorten(s.text))
		err.Suggestion = "Write each method as 'fn name(params) -> Type'"
		return nil, err
	}
	closing := st.closingParen(s.text, open)
	if closing < 0 {
		err := st.fail(declErrors.ErrorTypeInvalidMethodName, s.from(open), "Invalid method format: unclosed parameter list")
		err.Suggestion = "Close the parameter list with ')'"
		return nil, err
	}

	head := strings.Fields(s.text[:open])
	if len(head) < 2 {
		err := st.fail(declErrors.ErrorTypeInvalidMethodName, s, "Invalid method name: %q", shorten(s.text[:open]))
		err.Suggestion = "Write each method as 'fn name(params) -> Type'"
		return nil, err
	}

	method := &ast.MethodNode{Name: head[1]}

	params, err := st.parseParams(s.sub(open+1, closing))
	if err != nil {
		return nil, declErrors.Frame(err, "method %q", method.Name)
	}
	method.Params = params

	rest := s.from(closing + 1)
	if arrow := strings.Index(rest.text, "->"); arrow >= 0 {
		ret := rest.from(arrow + 2).trim()
		ret.text = strings.TrimSuffix(ret.text, ";")
		typ, err := st.parseType(ret, 0)
		if err != nil {
			return nil, declErrors.Frame(err, "method %q", method.Name)
		}
		method.ReturnType = typ
	}

	return method, nil
}

// parseParams parses a comma separated parameter list. The receiver spellings
// "self" and "&self" need no type annotation.
func (st *state) parseParams(s span) ([]*ast.ParamNode, error) {
	var params []*ast.ParamNode
	if s.trim().text == "" {
		return params, nil
	}

	for _, frag := range st.split(s, ',') {
		switch frag.text {
		case ast.ReceiverRefSelf:
			params = append(params, &ast.ParamNode{
				Name: ast.ReceiverRefSelf,
				Type: ast.Reference(ast.Simple(ast.ReceiverSelf)),
			})
			continue
		case ast.ReceiverSelf:
			params = append(params, &ast.ParamNode{
				Name: ast.ReceiverSelf,
				Type: ast.Simple(ast.ReceiverSelf),
			})
			continue
		}

		name, typ, ok := st.splitPair(frag)
		if !ok || !isToken(name.text) {
			err := st.fail(declErrors.ErrorTypeInvalidParameterFormat, frag, "Invalid parameter format: %q", shorten(frag.text))
			err.Suggestion = declErrors.SuggestColonPair("parameter")
			return nil, err
		}
		t, err := st.parseType(typ, 0)
		if err != nil {
			return nil, declErrors.Frame(err, "parameter %q", name.text)
		}
		params = append(params, &ast.ParamNode{Name: name.text, Type: t})
	}
	return params, nil
}

// parseFields parses a struct body: comma separated "name: Type" pairs.
// A leading "pub" visibility marker on a field is dropped.
func (st *state) parseFields(body span, depth int) ([]*ast.FieldNode, error) {
	var fields []*ast.FieldNode
	for _, frag := range st.split(body, ',') {
		field, err := st.parseField(frag, depth)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// parseField parses one "name: Type" field.
func (st *state) parseField(s span, depth int) (*ast.FieldNode, error) {
	name, typ, ok := st.splitPair(s)
	if ok {
		if rest, found := strings.CutPrefix(name.text, "pub"); found && rest != "" && isSpace(rest[0]) {
			name = name.from(3).trim()
		}
	}
	if !ok || !isToken(name.text) {
		err := st.fail(declErrors.ErrorTypeInvalidFieldFormat, s, "Invalid field format: %q", shorten(s.text))
		err.Suggestion = declErrors.SuggestColonPair("field")
		return nil, err
	}

	t, err := st.parseType(typ, depth)
	if err != nil {
		return nil, declErrors.Frame(err, "field %q", name.text)
	}
	return &ast.FieldNode{Name: name.text, Type: t}, nil
}

// isToken reports whether text is a single non-empty token.
func isToken(text string) bool {
	return text != "" && !strings.ContainsFunc(text, func(r rune) bool {
		return r < 0x80 && isSpace(byte(r))
	})
}
