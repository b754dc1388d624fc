// Package logger configures the global zerolog logger for friosdesk.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets up the global logger. format is "console" (default) or "json";
// level is a zerolog level name, defaulting to info when unparseable.
func Init(level, format string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// SetDebug drops the global level to debug, used by the --debug flag.
func SetDebug() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}
