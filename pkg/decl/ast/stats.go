package ast

// Stats counts AST nodes by kind. It implements Visitor and is filled in by
// Walk; use CountNodes for the common case.
type Stats struct {
	Traits   int
	Structs  int // includes anonymous variant payloads
	Enums    int
	Methods  int
	Params   int
	Fields   int
	Variants int
	Types    int // every TypeNode, nested arguments included

	// TypeNames counts references to each named type.
	TypeNames map[string]int
}

// CountNodes walks node and returns its statistics.
func CountNodes(node *Node) *Stats {
	s := &Stats{TypeNames: make(map[string]int)}
	// Stats never returns an error from a visit method
	_ = Walk(node, s)
	return s
}

// Declarations returns the number of Trait, Struct, and Enum nodes.
func (s *Stats) Declarations() int {
	return s.Traits + s.Structs + s.Enums
}

// Composite returns the number of nodes that render as a header line:
// declarations, methods, and variants.
func (s *Stats) Composite() int {
	return s.Declarations() + s.Methods + s.Variants
}

// Members returns the number of direct members (methods, fields, variants).
func (s *Stats) Members() int {
	return s.Methods + s.Fields + s.Variants
}

func (s *Stats) VisitNode(n *Node) error {
	switch n.Kind {
	case NodeKindTrait:
		s.Traits++
	case NodeKindStruct:
		s.Structs++
	case NodeKindEnum:
		s.Enums++
	}
	return nil
}

func (s *Stats) VisitMethod(*MethodNode) error {
	s.Methods++
	return nil
}

func (s *Stats) VisitParam(*ParamNode) error {
	s.Params++
	return nil
}

func (s *Stats) VisitField(*FieldNode) error {
	s.Fields++
	return nil
}

func (s *Stats) VisitVariant(*VariantNode) error {
	s.Variants++
	return nil
}

func (s *Stats) VisitType(t *TypeNode) error {
	s.Types++
	if s.TypeNames == nil {
		s.TypeNames = make(map[string]int)
	}
	if t.Name != "" && t.Name != SliceTypeName {
		s.TypeNames[t.Name]++
	}
	return nil
}
