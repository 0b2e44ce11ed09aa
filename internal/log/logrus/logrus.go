package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/waabox/auditdeck/internal/log"
)

type logger struct {
	*logrus.Entry
}

// NewLogrus returns a new log.Logger backed by a logrus entry.
func NewLogrus(l *logrus.Entry) log.Logger {
	return logger{Entry: l}
}

func (l logger) WithValues(kv log.Kv) log.Logger {
	newLogger := l.Entry.WithFields(logrus.Fields(kv))
	return NewLogrus(newLogger)
}
