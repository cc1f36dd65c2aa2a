package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the service logger. Development runs get colored debug-level
// console output; production runs get plain info-level output.
func New(environment string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    environment == "production",
	}

	if environment == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	return zerolog.New(output).With().
		Timestamp().
		Str("env", environment).
		Logger()
}
