// Package log is a thin leveled-logging facade over logrus, in the
// style of the teacher's direct logrus usage (cli_app.go, hclfmt.go).
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Level mirrors the subset of logrus levels pipeflow exposes on its CLI.
type Level = logrus.Level

const (
	DebugLevel = logrus.DebugLevel
	InfoLevel  = logrus.InfoLevel
	WarnLevel  = logrus.WarnLevel
	ErrorLevel = logrus.ErrorLevel
)

// ParseLevel parses a level name such as "debug" or "info".
func ParseLevel(name string) (Level, error) {
	return logrus.ParseLevel(name)
}

// Logger wraps a *logrus.Entry so call sites can attach step context
// without reaching into logrus directly.
type Logger struct {
	entry *logrus.Entry
}

// New creates a Logger writing to w at the given level.
func New(w io.Writer, level Level) *Logger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetLevel(level)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return &Logger{entry: logrus.NewEntry(base)}
}

// Default returns a Logger writing to stderr at info level.
func Default() *Logger {
	return New(os.Stderr, InfoLevel)
}

// WithField returns a child Logger carrying an extra structured field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// WithStep attaches a step's primary output as the "step" field, the
// engine's most common structured log key.
func (l *Logger) WithStep(primaryOutput string) *Logger {
	return l.WithField("step", primaryOutput)
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
