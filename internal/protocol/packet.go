package protocol

import "math/big"

// Header is the 6-bit header every packet starts with.
type Header struct {
	Version uint8
	Type    TypeID
}

// Packet is either a *Literal or an *Operator. Packets are immutable once
// built; nothing in this package retains or mutates a returned tree.
type Packet interface {
	Header() Header
	sealed()
}

// Literal carries a single value built from chained 4-bit groups.
type Literal struct {
	Version uint8
	Value   *big.Int
}

// Operator applies Type to its ordered children.
type Operator struct {
	Version  uint8
	Type     TypeID
	Children []Packet
}

var (
	_ Packet = (*Literal)(nil)
	_ Packet = (*Operator)(nil)
)

func (l *Literal) Header() Header { return Header{Version: l.Version, Type: TypeLiteral} }
func (o *Operator) Header() Header { return Header{Version: o.Version, Type: o.Type} }

func (*Literal) sealed() {}
func (*Operator) sealed() {}

// NewLiteral builds a literal holding a copy of v.
func NewLiteral(version uint8, v *big.Int) *Literal {
	return &Literal{Version: version, Value: new(big.Int).Set(v)}
}

// NewUintLiteral builds a literal from a machine integer.
func NewUintLiteral(version uint8, v uint64) *Literal {
	return &Literal{Version: version, Value: new(big.Int).SetUint64(v)}
}

// NewOperator builds an operator over children, preserving their order.
func NewOperator(version uint8, typ TypeID, children ...Packet) *Operator {
	out := make([]Packet, len(children))
	copy(out, children)
	return &Operator{Version: version, Type: typ, Children: out}
}
