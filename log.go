package stocklog

import (
	"os"

	"github.com/rs/zerolog"
)

// logger is the package logger for storage and import diagnostics. User-facing
// output goes to stdout through the CLI, never through here.
var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
