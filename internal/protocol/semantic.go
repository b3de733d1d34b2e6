package protocol

import "fmt"

// Stats summarizes the shape of a decoded tree.
type Stats struct {
	Packets   int `json:"packets"`
	Literals  int `json:"literals"`
	Operators int `json:"operators"`
	MaxDepth  int `json:"max_depth"`
	// MaxLiteralBits is the bit length of the widest literal value.
	MaxLiteralBits int `json:"max_literal_bits"`
}

// Inspect walks the tree and counts its packets.
func Inspect(p Packet) Stats {
	var s Stats
	inspect(p, 1, &s)
	return s
}

func inspect(p Packet, depth int, s *Stats) {
	if p == nil {
		return
	}
	s.Packets++
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	switch p := p.(type) {
	case *Literal:
		if p == nil {
			return
		}
		s.Literals++
		if p.Value != nil && p.Value.BitLen() > s.MaxLiteralBits {
			s.MaxLiteralBits = p.Value.BitLen()
		}
	case *Operator:
		if p == nil {
			return
		}
		s.Operators++
		for _, c := range p.Children {
			inspect(c, depth+1, s)
		}
	}
}

// Validate checks operator types and arities across the whole tree without
// evaluating it. Value reports the same errors lazily.
func Validate(p Packet) error {
	return validate(p, "root")
}

func validate(p Packet, path string) error {
	switch p := p.(type) {
	case *Literal:
		if p == nil {
			return fmt.Errorf("%w: %s", ErrNilPacket, path)
		}
		if p.Value != nil && p.Value.Sign() < 0 {
			return fmt.Errorf("protocol: %s: negative literal", path)
		}
		return nil
	case *Operator:
		if p == nil {
			return fmt.Errorf("%w: %s", ErrNilPacket, path)
		}
		if err := checkArity(p); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for i, c := range p.Children {
			if err := validate(c, fmt.Sprintf("%s.%d", path, i)); err != nil {
				return err
			}
		}
		return nil
	case nil:
		return fmt.Errorf("%w: %s", ErrNilPacket, path)
	}
	return fmt.Errorf("%w: %s: %T", ErrUnknownOperator, path, p)
}
