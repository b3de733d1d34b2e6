package protocol

import (
	"fmt"
	"strings"
)

// Node is a serializable view of a packet tree.
type Node struct {
	Version  uint8  `json:"version"`
	Type     string `json:"type"`
	TypeID   uint8  `json:"type_id"`
	Value    string `json:"value,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Describe converts p into its serializable view. Literal values are
// rendered in decimal.
func Describe(p Packet) Node {
	switch p := p.(type) {
	case *Literal:
		n := Node{Version: p.Version, Type: TypeLiteral.String(), TypeID: uint8(TypeLiteral), Value: "0"}
		if p.Value != nil {
			n.Value = p.Value.String()
		}
		return n
	case *Operator:
		n := Node{Version: p.Version, Type: p.Type.String(), TypeID: uint8(p.Type)}
		if len(p.Children) > 0 {
			n.Children = make([]Node, len(p.Children))
			for i, c := range p.Children {
				n.Children[i] = Describe(c)
			}
		}
		return n
	}
	return Node{}
}

// Format renders p as an indented tree, one packet per line.
func Format(p Packet) string {
	var b strings.Builder
	writeNode(&b, Describe(p), 0)
	return b.String()
}

func writeNode(b *strings.Builder, n Node, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	if n.Type == TypeLiteral.String() {
		fmt.Fprintf(b, "v%d literal %s\n", n.Version, n.Value)
		return
	}
	fmt.Fprintf(b, "v%d %s (%d)\n", n.Version, n.Type, len(n.Children))
	for _, c := range n.Children {
		writeNode(b, c, indent+1)
	}
}
