// Package logging configures the process-wide zerolog logger.
// All output goes to stderr so the stdio MCP transport keeps stdout
// clean for protocol frames.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds a logger at the given level. Unknown levels fall back to info.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
