// Package xlog is a thin wrapper around logrus giving the engine one
// shared, package-level logger instead of passing a logger through every
// call. Only the CLI configures it (its level); library code under
// pkg/ just logs through it at Debug/Trace level for build and reduction
// progress.
package xlog

import "github.com/sirupsen/logrus"

var log = logrus.New()

// Configure sets the process-wide log level by name ("debug", "info",
// "warn", "error", ...). An unrecognized level is ignored and the
// previous level is kept.
func Configure(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return
	}
	log.SetLevel(lvl)
}

func Debugf(format string, args ...interface{}) { log.Debugf(format, args...) }
func Tracef(format string, args ...interface{}) { log.Tracef(format, args...) }
func Infof(format string, args ...interface{})  { log.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { log.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { log.Errorf(format, args...) }

// WithField returns a logrus entry pre-populated with one field, for
// call sites that want structured key/value context rather than a
// formatted message.
func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}
