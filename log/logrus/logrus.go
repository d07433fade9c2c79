// Package logrus adapts a logrus entry to the snapcache Logger interface.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/snapcache"
)

type Logger struct{ E *logrus.Entry }

var _ snapcache.Logger = Logger{}

// New wraps a logrus.Logger; use Logger{E: entry} directly to carry
// pre-set fields.
func New(l *logrus.Logger) Logger { return Logger{E: logrus.NewEntry(l)} }

func (l Logger) Debug(msg string, f snapcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}

func (l Logger) Info(msg string, f snapcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Info(msg)
}

func (l Logger) Warn(msg string, f snapcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Warn(msg)
}

func (l Logger) Error(msg string, f snapcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
