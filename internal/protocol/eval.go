package protocol

import (
	"fmt"
	"math/big"
)

// VersionSum adds the version of every packet in the tree.
func VersionSum(p Packet) uint64 {
	switch p := p.(type) {
	case *Literal:
		if p != nil {
			return uint64(p.Version)
		}
	case *Operator:
		if p == nil {
			return 0
		}
		sum := uint64(p.Version)
		for _, c := range p.Children {
			sum += VersionSum(c)
		}
		return sum
	}
	return 0
}

// Value evaluates the tree. The result is a fresh integer owned by the
// caller.
func Value(p Packet) (*big.Int, error) {
	switch p := p.(type) {
	case *Literal:
		if p == nil {
			return nil, ErrNilPacket
		}
		if p.Value == nil {
			return new(big.Int), nil
		}
		return new(big.Int).Set(p.Value), nil
	case *Operator:
		if p == nil {
			return nil, ErrNilPacket
		}
		return operate(p)
	case nil:
		return nil, ErrNilPacket
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownOperator, p)
}

func operate(op *Operator) (*big.Int, error) {
	if err := checkArity(op); err != nil {
		return nil, err
	}
	vals := make([]*big.Int, len(op.Children))
	for i, c := range op.Children {
		v, err := Value(c)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}

	switch op.Type {
	case TypeSum:
		acc := new(big.Int)
		for _, v := range vals {
			acc.Add(acc, v)
		}
		return acc, nil
	case TypeProduct:
		acc := big.NewInt(1)
		for _, v := range vals {
			acc.Mul(acc, v)
		}
		return acc, nil
	case TypeMinimum:
		acc := vals[0]
		for _, v := range vals[1:] {
			if v.Cmp(acc) < 0 {
				acc = v
			}
		}
		return acc, nil
	case TypeMaximum:
		acc := vals[0]
		for _, v := range vals[1:] {
			if v.Cmp(acc) > 0 {
				acc = v
			}
		}
		return acc, nil
	case TypeGreaterThan:
		return truth(vals[0].Cmp(vals[1]) > 0), nil
	case TypeLessThan:
		return truth(vals[0].Cmp(vals[1]) < 0), nil
	case TypeEqualTo:
		return truth(vals[0].Cmp(vals[1]) == 0), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownOperator, op.Type)
}

func checkArity(op *Operator) error {
	switch {
	case op.Type.Comparison():
		if len(op.Children) != 2 {
			return fmt.Errorf("%w: %s wants 2 operands, got %d", ErrInvalidArity, op.Type, len(op.Children))
		}
	case op.Type <= TypeMaximum:
		if len(op.Children) == 0 {
			return fmt.Errorf("%w: %s wants at least 1 operand", ErrInvalidArity, op.Type)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOperator, op.Type)
	}
	return nil
}

func truth(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	return new(big.Int)
}
