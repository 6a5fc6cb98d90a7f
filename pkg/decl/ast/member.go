package ast

// Receiver spellings kept literally as parameter names.
const (
	ReceiverSelf    = "self"
	ReceiverRefSelf = "&self"
)

// MethodNode represents one method signature inside a trait.
// ReturnType is nil when the signature has no "->" clause.
type MethodNode struct {
	Name       string
	Params     []*ParamNode
	ReturnType *TypeNode
}

// HasReturnType returns true if the method declares a return type.
func (m *MethodNode) HasReturnType() bool {
	return m.ReturnType != nil
}

// Receiver returns the receiver parameter, or nil for associated functions.
func (m *MethodNode) Receiver() *ParamNode {
	for _, p := range m.Params {
		if p.IsReceiver() {
			return p
		}
	}
	return nil
}

// ParamNode represents one method parameter.
type ParamNode struct {
	Name string
	Type *TypeNode
}

// IsReceiver returns true for the "self" and "&self" parameters.
func (p *ParamNode) IsReceiver() bool {
	return p.Name == ReceiverSelf || p.Name == ReceiverRefSelf
}

// FieldNode represents a named or positional struct field.
type FieldNode struct {
	Name string // identifier, or "0", "1", ... for positional fields
	Type *TypeNode
}

// VariantNode represents an enum variant. Data is nil for unit variants;
// otherwise it holds an anonymous struct describing the payload.
type VariantNode struct {
	Name string
	Data *Node
}

// IsUnit returns true if the variant carries no payload.
func (v *VariantNode) IsUnit() bool {
	return v.Data == nil
}

// IsTuple returns true if the payload has positional fields only.
func (v *VariantNode) IsTuple() bool {
	return v.Data != nil && v.Data.IsStruct() && v.Data.Struct.IsTuple()
}
