// A simple logging interface that wraps the standard library 'log' package to
// add a debug level and a warning stream. Note, this is not, therefore, a
// high-performance library. If you need that, use something like
// https://pkg.go.dev/github.com/golang/glog.
package log

import (
	"fmt"
	"io"
	stdLog "log"
	"os"
)

type Logger struct {
	debug bool
	out   io.Writer
	warn  io.Writer
	dbg   *stdLog.Logger
}

func New(debug bool) Logger {
	return NewWithWriters(debug, os.Stdout, os.Stderr)
}

// NewWithWriters sends Infof to out, and both Warnf and Debugf to errOut.
func NewWithWriters(debug bool, out, errOut io.Writer) Logger {
	return Logger{
		debug: debug,
		out:   out,
		warn:  errOut,
		dbg:   stdLog.New(errOut, "", stdLog.LstdFlags),
	}
}

// For stuff users care about - wraps fmt. Always adds a trailing newline.
func (l Logger) Infof(format string, args ...any) {
	fmt.Fprintf(l.writer(l.out, os.Stdout), format+"\n", args...)
}

// For things that worked but probably shouldn't have been needed, e.g. falling
// back to a default. Goes to stderr so it never mixes with a value a script is
// capturing from stdout.
func (l Logger) Warnf(format string, args ...any) {
	fmt.Fprintf(l.writer(l.warn, os.Stderr), format+"\n", args...)
}

// For stuff developers care about - wraps log and only logs if debug is true.
func (l Logger) Debugf(format string, args ...any) {
	if !l.debug {
		return
	}
	if l.dbg == nil {
		stdLog.Printf(format, args...)
		return
	}
	l.dbg.Printf(format, args...)
}

func (l Logger) IsDebug() bool {
	return l.debug
}

// zero-value Loggers behave like New(false)
func (l Logger) writer(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
