// Package plog is a leveled, bracket-tagged logger shared by the pact-go
// packages. It formalizes the teacher's log.Println("[DEBUG] ...") idiom
// with a filterable level, the way pact-go's CLI tooling gates verbosity
// with PACT_LOG_LEVEL.
package plog

import (
	"log"
	"os"

	"github.com/hashicorp/logutils"
)

var filter = &logutils.LevelFilter{
	Levels:   []logutils.LogLevel{"DEBUG", "WARN", "ERROR"},
	MinLevel: "WARN",
	Writer:   os.Stderr,
}

func init() {
	if lvl := os.Getenv("PACT_LOG_LEVEL"); lvl != "" {
		filter.MinLevel = logutils.LogLevel(lvl)
	}
	log.SetOutput(filter)
	log.SetFlags(0)
}

// Debugf logs a [DEBUG]-tagged message, suppressed unless PACT_LOG_LEVEL=DEBUG.
func Debugf(format string, args ...interface{}) {
	log.Printf("[DEBUG] "+format, args...)
}

// Warnf logs a [WARN]-tagged message - the tolerant loader's way of
// surfacing a dropped, malformed matching rule without failing the load.
func Warnf(format string, args ...interface{}) {
	log.Printf("[WARN] "+format, args...)
}

// Errorf logs an [ERROR]-tagged message.
func Errorf(format string, args ...interface{}) {
	log.Printf("[ERROR] "+format, args...)
}
