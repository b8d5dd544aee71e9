// Package logger wraps the standard library logger with the leveled
// output a command-line tool needs: Info and Warn always print, Debug
// and Trace are opt-in.
package logger

import (
	"io"
	"log"
	"os"
)

// Level controls how chatty a Logger is.
type Level int

const (
	LevelInfo Level = iota
	LevelDebug
	LevelTrace
)

type Logger struct {
	*log.Logger
	level Level
}

type Option func(*Logger)

func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.Logger = log.New(w, l.Logger.Prefix(), l.Logger.Flags())
	}
}

func WithPrefix(prefix string) Option {
	return func(l *Logger) {
		l.Logger = log.New(l.Logger.Writer(), prefix, l.Logger.Flags())
	}
}

func WithFlags(flags int) Option {
	return func(l *Logger) {
		l.Logger = log.New(l.Logger.Writer(), l.Logger.Prefix(), flags)
	}
}

func WithLevel(level Level) Option {
	return func(l *Logger) {
		l.level = level
	}
}

func New(options ...Option) *Logger {
	l := &Logger{
		Logger: log.New(os.Stdout, "", log.LstdFlags),
		level:  LevelInfo,
	}

	for _, opt := range options {
		opt(l)
	}

	return l
}

// SetLevel selects the minimum level that gets printed.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// SetVerbose raises the level to Debug. It never lowers a level that is
// already higher.
func (l *Logger) SetVerbose(verbose bool) {
	if verbose && l.level < LevelDebug {
		l.level = LevelDebug
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.printf(LevelInfo, "INFO: ", format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.printf(LevelInfo, "WARN: ", format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.printf(LevelDebug, "DEBUG: ", format, args...)
}

func (l *Logger) Trace(format string, args ...interface{}) {
	l.printf(LevelTrace, "TRACE: ", format, args...)
}

func (l *Logger) printf(min Level, prefix, format string, args ...interface{}) {
	if l.level < min {
		return
	}
	l.Logger.Printf(prefix+format, args...)
}
