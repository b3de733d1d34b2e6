// Package bits reads a hex-encoded bitstream one bit at a time, most
// significant bit of each digit first.
package bits

import (
	"errors"
	"fmt"
	"io"
)

// MaxReadWidth is the widest field ReadUint accepts.
const MaxReadWidth = 64

var (
	ErrMalformedHex          = errors.New("bits: malformed hex")
	ErrUnexpectedEndOfStream = errors.New("bits: unexpected end of stream")
	ErrReadWidth             = errors.New("bits: read width out of range")
)

// Reader is a sequential, non-restartable bit cursor over hex digits.
// It is not safe for concurrent use.
type Reader struct {
	nibbles []uint8
	index   int

	// window holds the digit being consumed; shift is the count of its
	// bits still unread (0 means no partial window).
	window uint8
	shift  uint8

	consumed int
}

// NewReader validates hex and returns a reader positioned at its first bit.
// Empty input, odd-length input and non-hex characters are rejected.
func NewReader(hex string) (*Reader, error) {
	if len(hex) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedHex)
	}
	if len(hex)%2 != 0 {
		return nil, fmt.Errorf("%w: odd digit count %d", ErrMalformedHex, len(hex))
	}
	nibbles := make([]uint8, len(hex))
	for i := 0; i < len(hex); i++ {
		v, ok := nibble(hex[i])
		if !ok {
			return nil, fmt.Errorf("%w: invalid digit %q at offset %d", ErrMalformedHex, hex[i], i)
		}
		nibbles[i] = v
	}
	return &Reader{nibbles: nibbles}, nil
}

func nibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// NextBit returns the next bit, or io.EOF once the stream is exhausted.
func (r *Reader) NextBit() (uint, error) {
	if r.shift == 0 {
		if r.index >= len(r.nibbles) {
			return 0, io.EOF
		}
		r.window = r.nibbles[r.index]
		r.index++
		r.shift = 4
	}
	r.shift--
	r.consumed++
	return uint(r.window>>r.shift) & 1, nil
}

// ReadUint reads n bits as an unsigned integer, first bit most significant.
// When fewer than n bits remain nothing is consumed and
// ErrUnexpectedEndOfStream is returned.
func (r *Reader) ReadUint(n int) (uint64, error) {
	if n < 0 || n > MaxReadWidth {
		return 0, fmt.Errorf("%w: %d", ErrReadWidth, n)
	}
	if rem := r.Remaining(); rem < n {
		return 0, fmt.Errorf("%w: want %d bits at offset %d, have %d", ErrUnexpectedEndOfStream, n, r.consumed, rem)
	}
	var v uint64
	for i := 0; i < n; i++ {
		b, err := r.NextBit()
		if err != nil {
			return 0, fmt.Errorf("%w: offset %d", ErrUnexpectedEndOfStream, r.consumed)
		}
		v = v<<1 | uint64(b)
	}
	return v, nil
}

// Remaining returns the count of unread bits.
func (r *Reader) Remaining() int {
	return (len(r.nibbles)-r.index)*4 + int(r.shift)
}

// Consumed returns the count of bits read so far.
func (r *Reader) Consumed() int {
	return r.consumed
}

// RestZero reports whether every unread bit is zero. It does not advance
// the reader.
func (r *Reader) RestZero() bool {
	if r.shift > 0 && r.window&(1<<r.shift-1) != 0 {
		return false
	}
	for _, v := range r.nibbles[r.index:] {
		if v != 0 {
			return false
		}
	}
	return true
}
