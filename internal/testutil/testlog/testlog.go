package testlog

import (
	"testing"

	"github.com/danmuck/bitsdec/internal/logging"
	"github.com/rs/zerolog/log"
)

// Start configures test logging and marks the start of t in the log.
func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	log.Debug().Str("test", t.Name()).Msg("test start")
}
