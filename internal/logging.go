package internal

import (
	"log"
	"os"
)

var verbose bool

// InitLogging directs the standard logger at stdout with microsecond
// timestamps.
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

// SetVerbose enables Debugf output.
func SetVerbose(v bool) {
	verbose = v
}

// Debugf logs only when verbose logging is enabled. Used for per-record
// diagnostics that would swamp normal runs.
func Debugf(format string, args ...any) {
	if verbose {
		log.Printf("DEBUG "+format, args...)
	}
}
