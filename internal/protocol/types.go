package protocol

import "fmt"

// TypeID is the 3-bit packet type field.
type TypeID uint8

const (
	TypeSum         TypeID = 0
	TypeProduct     TypeID = 1
	TypeMinimum     TypeID = 2
	TypeMaximum     TypeID = 3
	TypeLiteral     TypeID = 4
	TypeGreaterThan TypeID = 5
	TypeLessThan    TypeID = 6
	TypeEqualTo     TypeID = 7
)

// Wire field widths in bits.
const (
	VersionBits     = 3
	TypeBits        = 3
	HeaderBits      = VersionBits + TypeBits
	LengthTypeBits  = 1
	SubBitsLenBits  = 15
	SubCountLenBits = 11
	GroupBits       = 5
	GroupValueBits  = 4
)

// Operator length types.
const (
	LengthTypeTotalBits uint64 = 0 // 15-bit total sub-packet bit length
	LengthTypeCount     uint64 = 1 // 11-bit sub-packet count
)

var typeNames = [...]string{
	TypeSum:         "sum",
	TypeProduct:     "product",
	TypeMinimum:     "minimum",
	TypeMaximum:     "maximum",
	TypeLiteral:     "literal",
	TypeGreaterThan: "greater_than",
	TypeLessThan:    "less_than",
	TypeEqualTo:     "equal_to",
}

func (t TypeID) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Comparison reports whether t is one of the binary comparison operators.
func (t TypeID) Comparison() bool {
	return t == TypeGreaterThan || t == TypeLessThan || t == TypeEqualTo
}
