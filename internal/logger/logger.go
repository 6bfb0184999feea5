// Package logger holds the shared application logger. Every entry created
// through the package helpers carries the service identity so log lines from
// this process are attributable when aggregated.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

const serviceField = "image-describer"

// Logger is the process-wide logrus instance.
var Logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(parseLevel(os.Getenv("LOG_LEVEL")))
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	return l
}

// parseLevel maps a LOG_LEVEL value to a logrus level, defaulting to info
// when unset or unrecognized.
func parseLevel(value string) logrus.Level {
	level, err := logrus.ParseLevel(value)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func base() *logrus.Entry {
	return Logger.WithField("service", serviceField)
}

// WithFields creates a new entry with the given fields
func WithFields(fields logrus.Fields) *logrus.Entry {
	return base().WithFields(fields)
}

// WithField creates a new entry with a single field
func WithField(key string, value interface{}) *logrus.Entry {
	return base().WithField(key, value)
}

// WithError creates a new entry with an error field
func WithError(err error) *logrus.Entry {
	return base().WithError(err)
}
