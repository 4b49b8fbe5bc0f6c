// Package log provides the logger used throughout the emulator.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a Logger that writes plain text lines to stderr at info
// level.
func New() Logger {
	return newLogrus(logrus.InfoLevel, nil)
}

// NewDebug returns a Logger that writes debug level lines to w.
func NewDebug(w io.Writer) Logger {
	return newLogrus(logrus.DebugLevel, w)
}

func newLogrus(level logrus.Level, w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	if w != nil {
		l.SetOutput(w)
	}
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}
