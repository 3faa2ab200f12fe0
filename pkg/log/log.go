// Package log provides colored console logging for the mock endpoint,
// including an optional per-connection wire capture.
package log

import (
	"os"

	"github.com/fatih/color"
)

var red = color.New(color.FgRed).FprintfFunc()
var blue = color.New(color.FgBlue).FprintfFunc()
var yellow = color.New(color.FgYellow).FprintfFunc()

// ErrorMsg prints an error message to stderr in red color.
func ErrorMsg(format string, a ...interface{}) {
	red(os.Stderr, "[!] Error: "+format, a...)
}

// InfoMsg prints an informational message to stderr in blue color.
func InfoMsg(format string, a ...interface{}) {
	blue(os.Stderr, "[+] "+format, a...)
}

// Logger adds verbosity control on top of the package-level functions.
// A nil *Logger is valid and behaves like a non-verbose logger, so callers
// never need to guard log statements.
type Logger struct {
	verbose bool
}

// NewLogger creates a Logger. Verbose messages are suppressed unless
// verbose is true.
func NewLogger(verbose bool) *Logger {
	return &Logger{verbose: verbose}
}

// ErrorMsg prints an error message to stderr in red color.
func (l *Logger) ErrorMsg(format string, a ...interface{}) {
	ErrorMsg(format, a...)
}

// InfoMsg prints an informational message to stderr in blue color.
func (l *Logger) InfoMsg(format string, a ...interface{}) {
	InfoMsg(format, a...)
}

// VerboseMsg prints a debug message to stderr in yellow color.
// It is a no-op unless the logger was created with verbose enabled.
func (l *Logger) VerboseMsg(format string, a ...interface{}) {
	if l == nil || !l.verbose {
		return
	}
	yellow(os.Stderr, "[*] "+format+"\n", a...)
}
