package protocol

import (
	"errors"

	"github.com/danmuck/bitsdec/internal/protocol/bits"
)

var (
	ErrMalformedHex          = bits.ErrMalformedHex
	ErrUnexpectedEndOfStream = bits.ErrUnexpectedEndOfStream
	ErrReadWidth             = bits.ErrReadWidth

	ErrNilPacket       = errors.New("protocol: nil packet")
	ErrUnknownOperator = errors.New("protocol: unknown operator")
	ErrInvalidArity    = errors.New("protocol: invalid operator arity")
	ErrDepthExceeded   = errors.New("protocol: nesting depth exceeded")
	ErrInputTooLarge   = errors.New("protocol: input too large")
	ErrTrailingData    = errors.New("protocol: non-zero trailing bits")
)

// Kind maps a decode or evaluation error to a stable short name.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedHex):
		return "malformed_hex"
	case errors.Is(err, ErrUnexpectedEndOfStream):
		return "unexpected_end_of_stream"
	case errors.Is(err, ErrNilPacket):
		return "nil_packet"
	case errors.Is(err, ErrUnknownOperator):
		return "unknown_operator"
	case errors.Is(err, ErrInvalidArity):
		return "invalid_arity"
	case errors.Is(err, ErrDepthExceeded):
		return "depth_exceeded"
	case errors.Is(err, ErrInputTooLarge):
		return "input_too_large"
	case errors.Is(err, ErrTrailingData):
		return "trailing_data"
	case errors.Is(err, ErrReadWidth):
		return "read_width"
	default:
		return "internal"
	}
}
