package ast

// Visitor provides an interface for traversing the AST.
// Implement this interface to perform operations on AST nodes
// (validation, indexing, statistics, etc.).
type Visitor interface {
	VisitNode(*Node) error
	VisitMethod(*MethodNode) error
	VisitParam(*ParamNode) error
	VisitField(*FieldNode) error
	VisitVariant(*VariantNode) error
	VisitType(*TypeNode) error
}

// Walk traverses the AST in pre-order starting from node and calls the
// visitor for each node, including variant payloads and nested type
// arguments. It returns the first error encountered, or nil if traversal
// completes.
func Walk(node *Node, visitor Visitor) error {
	if node == nil {
		return nil
	}
	if err := visitor.VisitNode(node); err != nil {
		return err
	}

	switch node.Kind {
	case NodeKindTrait:
		for _, method := range node.Trait.Methods {
			if err := walkMethod(method, visitor); err != nil {
				return err
			}
		}

	case NodeKindStruct:
		for _, field := range node.Struct.Fields {
			if err := visitor.VisitField(field); err != nil {
				return err
			}
			if err := walkType(field.Type, visitor); err != nil {
				return err
			}
		}

	case NodeKindEnum:
		for _, variant := range node.Enum.Variants {
			if err := visitor.VisitVariant(variant); err != nil {
				return err
			}
			// Payloads are anonymous structs; walk them like any other node
			if err := Walk(variant.Data, visitor); err != nil {
				return err
			}
		}
	}

	return nil
}

// walkMethod visits a method, its parameters, and its return type.
func walkMethod(method *MethodNode, visitor Visitor) error {
	if err := visitor.VisitMethod(method); err != nil {
		return err
	}

	for _, param := range method.Params {
		if err := visitor.VisitParam(param); err != nil {
			return err
		}
		if err := walkType(param.Type, visitor); err != nil {
			return err
		}
	}

	return walkType(method.ReturnType, visitor)
}

// walkType recursively walks a type expression.
func walkType(t *TypeNode, visitor Visitor) error {
	if t == nil {
		return nil
	}
	if err := visitor.VisitType(t); err != nil {
		return err
	}
	if err := walkType(t.Elem, visitor); err != nil {
		return err
	}
	for _, arg := range t.Args {
		if err := walkType(arg, visitor); err != nil {
			return err
		}
	}
	return nil
}
