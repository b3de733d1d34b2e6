package protocol

import (
	"math/big"
	"strings"
)

// bitWriter is a test-only BITS encoder.
type bitWriter struct {
	bits []uint8
}

func (w *bitWriter) put(v uint64, width int) {
	for i := width - 1; i >= 0; i-- {
		w.bits = append(w.bits, uint8(v>>uint(i)&1))
	}
}

func (w *bitWriter) append(o *bitWriter) {
	w.bits = append(w.bits, o.bits...)
}

func (w *bitWriter) hex() string {
	bits := append([]uint8(nil), w.bits...)
	for len(bits)%8 != 0 {
		bits = append(bits, 0)
	}
	const digits = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(bits); i += 4 {
		n := bits[i]<<3 | bits[i+1]<<2 | bits[i+2]<<1 | bits[i+3]
		b.WriteByte(digits[n])
	}
	return b.String()
}

// encodeTree writes p, choosing each operator's length type with pick.
func encodeTree(w *bitWriter, p Packet, pick func(*Operator) uint64) {
	switch p := p.(type) {
	case *Literal:
		w.put(uint64(p.Version), VersionBits)
		w.put(uint64(TypeLiteral), TypeBits)
		groups := literalGroups(p.Value)
		for i, g := range groups {
			cont := uint64(1)
			if i == len(groups)-1 {
				cont = 0
			}
			w.put(cont<<GroupValueBits|g, GroupBits)
		}
	case *Operator:
		w.put(uint64(p.Version), VersionBits)
		w.put(uint64(p.Type), TypeBits)
		var sub bitWriter
		for _, c := range p.Children {
			encodeTree(&sub, c, pick)
		}
		lt := pick(p)
		w.put(lt, LengthTypeBits)
		if lt == LengthTypeTotalBits {
			w.put(uint64(len(sub.bits)), SubBitsLenBits)
		} else {
			w.put(uint64(len(p.Children)), SubCountLenBits)
		}
		w.append(&sub)
	}
}

func literalGroups(v *big.Int) []uint64 {
	if v.Sign() == 0 {
		return []uint64{0}
	}
	var groups []uint64
	rest := new(big.Int).Set(v)
	mask := big.NewInt(0xF)
	for rest.Sign() > 0 {
		groups = append([]uint64{new(big.Int).And(rest, mask).Uint64()}, groups...)
		rest.Rsh(rest, GroupValueBits)
	}
	return groups
}

func encodeHex(p Packet, pick func(*Operator) uint64) string {
	var w bitWriter
	encodeTree(&w, p, pick)
	return w.hex()
}

func byBits(*Operator) uint64  { return LengthTypeTotalBits }
func byCount(*Operator) uint64 { return LengthTypeCount }

// alternate picks by version parity so both framings appear in one tree.
func alternate(o *Operator) uint64 {
	return uint64(o.Version % 2)
}

func lit(version uint8, v uint64) *Literal { return NewUintLiteral(version, v) }

func op(version uint8, typ TypeID, children ...Packet) *Operator {
	return NewOperator(version, typ, children...)
}

func nest(depth int) Packet {
	var p Packet = lit(1, 42)
	for i := 1; i < depth; i++ {
		p = op(uint8(i%8), TypeSum, p)
	}
	return p
}

// equalPacket compares trees structurally in linear time.
func equalPacket(a, b Packet) bool {
	switch a := a.(type) {
	case *Literal:
		bl, ok := b.(*Literal)
		return ok && a.Version == bl.Version && a.Value.Cmp(bl.Value) == 0
	case *Operator:
		bo, ok := b.(*Operator)
		if !ok || a.Version != bo.Version || a.Type != bo.Type || len(a.Children) != len(bo.Children) {
			return false
		}
		for i := range a.Children {
			if !equalPacket(a.Children[i], bo.Children[i]) {
				return false
			}
		}
		return true
	}
	return a == nil && b == nil
}
