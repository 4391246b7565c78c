package gocrdt

import (
	"os"

	"github.com/rs/zerolog"
)

// logger is the package-level logger used for the one warning path the
// algorithm defines: a duplicate-timestamp op is dropped and logged.
// Embedding applications that want these warnings routed into their own
// logging pipeline can replace it with SetLogger; nothing else in this
// package logs anything, since applying an op is a pure CPU-bound state
// update.
var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().
	Timestamp().
	Str("pkg", "gocrdt").
	Logger()

// SetLogger replaces the package-level logger used for the duplicate
// timestamp warning. Safe to call once at startup; not safe to call
// concurrently with operations that might log.
func SetLogger(l zerolog.Logger) {
	logger = l
}
