package protocol

import (
	"fmt"
	"math/big"

	"github.com/danmuck/bitsdec/internal/protocol/bits"
)

// Limits constrains decode work on untrusted input.
type Limits struct {
	// MaxDepth bounds packet nesting; the root packet is depth 1.
	MaxDepth int
	// MaxHexDigits bounds the input length before any bit is read.
	MaxHexDigits int
	// StrictPadding rejects non-zero bits after the root packet.
	StrictPadding bool
}

func DefaultLimits() Limits {
	return Limits{
		MaxDepth:     256,
		MaxHexDigits: 1 << 20,
	}
}

func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	if l.MaxDepth <= 0 {
		l.MaxDepth = def.MaxDepth
	}
	if l.MaxHexDigits <= 0 {
		l.MaxHexDigits = def.MaxHexDigits
	}
	return l
}

// Decode parses the root packet of a hex-encoded transmission. Bits after
// the root packet are padding and are never parsed.
func Decode(hex string, limits Limits) (Packet, error) {
	limits = limits.withDefaults()
	if len(hex) > limits.MaxHexDigits {
		return nil, fmt.Errorf("%w: %d digits exceeds %d", ErrInputTooLarge, len(hex), limits.MaxHexDigits)
	}
	r, err := bits.NewReader(hex)
	if err != nil {
		return nil, err
	}
	p, _, err := ParsePacket(r, limits)
	if err != nil {
		return nil, err
	}
	if limits.StrictPadding && !r.RestZero() {
		return nil, fmt.Errorf("%w: %d bits after bit %d", ErrTrailingData, r.Remaining(), r.Consumed())
	}
	return p, nil
}

// ParsePacket reads one packet from r and returns it with the exact count
// of bits it occupied.
func ParsePacket(r *bits.Reader, limits Limits) (Packet, int, error) {
	p := parser{r: r, limits: limits.withDefaults()}
	return p.packet(1)
}

type parser struct {
	r      *bits.Reader
	limits Limits
}

func (p *parser) read(width int, field string) (uint64, error) {
	at := p.r.Consumed()
	v, err := p.r.ReadUint(width)
	if err != nil {
		return 0, fmt.Errorf("protocol: read %s at bit %d: %w", field, at, err)
	}
	return v, nil
}

func (p *parser) packet(depth int) (Packet, int, error) {
	if depth > p.limits.MaxDepth {
		return nil, 0, fmt.Errorf("%w: limit %d at bit %d", ErrDepthExceeded, p.limits.MaxDepth, p.r.Consumed())
	}

	version, err := p.read(VersionBits, "version")
	if err != nil {
		return nil, 0, err
	}
	typ, err := p.read(TypeBits, "type id")
	if err != nil {
		return nil, 0, err
	}
	n := HeaderBits

	if TypeID(typ) == TypeLiteral {
		lit, used, err := p.literal(uint8(version))
		if err != nil {
			return nil, 0, err
		}
		return lit, n + used, nil
	}

	lengthType, err := p.read(LengthTypeBits, "length type")
	if err != nil {
		return nil, 0, err
	}
	n += LengthTypeBits

	var (
		children []Packet
		used     int
	)
	if lengthType == LengthTypeTotalBits {
		children, used, err = p.childrenByBits(depth)
	} else {
		children, used, err = p.childrenByCount(depth)
	}
	if err != nil {
		return nil, 0, err
	}
	op := &Operator{Version: uint8(version), Type: TypeID(typ), Children: children}
	return op, n + used, nil
}

// literal reads 5-bit groups until one has a clear continuation bit.
func (p *parser) literal(version uint8) (*Literal, int, error) {
	value := new(big.Int)
	group := new(big.Int)
	n := 0
	for {
		g, err := p.read(GroupBits, "literal group")
		if err != nil {
			return nil, 0, err
		}
		n += GroupBits
		value.Lsh(value, GroupValueBits)
		value.Or(value, group.SetUint64(g&0xF))
		if g>>GroupValueBits == 0 {
			break
		}
	}
	return &Literal{Version: version, Value: value}, n, nil
}

// childrenByBits parses children until their accumulated size reaches the
// declared budget. At least one child is always read.
func (p *parser) childrenByBits(depth int) ([]Packet, int, error) {
	budget, err := p.read(SubBitsLenBits, "sub-packet bit length")
	if err != nil {
		return nil, 0, err
	}
	var (
		children []Packet
		sub      int
	)
	for {
		child, used, err := p.packet(depth + 1)
		if err != nil {
			return nil, 0, err
		}
		children = append(children, child)
		sub += used
		if uint64(sub) >= budget {
			break
		}
	}
	return children, SubBitsLenBits + sub, nil
}

func (p *parser) childrenByCount(depth int) ([]Packet, int, error) {
	count, err := p.read(SubCountLenBits, "sub-packet count")
	if err != nil {
		return nil, 0, err
	}
	children := make([]Packet, 0, count)
	n := SubCountLenBits
	for i := uint64(0); i < count; i++ {
		child, used, err := p.packet(depth + 1)
		if err != nil {
			return nil, 0, err
		}
		children = append(children, child)
		n += used
	}
	return children, n, nil
}
