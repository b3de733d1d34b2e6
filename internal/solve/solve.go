// Package solve answers the two packet decoder questions for a puzzle
// input: the version sum and the value of the outermost packet.
package solve

import (
	"strconv"
	"strings"

	"github.com/danmuck/bitsdec/internal/protocol"
	"github.com/danmuck/bitsdec/internal/report"
	"github.com/rs/zerolog/log"
)

const Name = "Packet Decoder"

type Solver struct {
	Limits protocol.Limits
}

func New(limits protocol.Limits) Solver {
	return Solver{Limits: limits}
}

func (s Solver) decode(input string) (protocol.Packet, error) {
	p, err := protocol.Decode(strings.TrimSpace(input), s.Limits)
	if err != nil {
		log.Debug().Str("kind", protocol.Kind(err)).Err(err).Msg("solve: decode failed")
		return nil, err
	}
	return p, nil
}

// VersionSum returns the decimal sum of every packet version.
func (s Solver) VersionSum(input string) (string, error) {
	p, err := s.decode(input)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(protocol.VersionSum(p), 10), nil
}

// Value returns the decimal value of the outermost packet.
func (s Solver) Value(input string) (string, error) {
	p, err := s.decode(input)
	if err != nil {
		return "", err
	}
	v, err := protocol.Value(p)
	if err != nil {
		log.Debug().Str("kind", protocol.Kind(err)).Err(err).Msg("solve: evaluation failed")
		return "", err
	}
	return v.String(), nil
}

// Parts returns both questions in report order.
func (s Solver) Parts() []report.Part {
	return []report.Part{
		{Name: "part one", Run: s.VersionSum},
		{Name: "part two", Run: s.Value},
	}
}
