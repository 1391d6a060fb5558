package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger .
type Logger interface {
	Debugf(format string, a ...interface{})
	Infof(format string, a ...interface{})
	Warnf(format string, a ...interface{})
	Errorf(format string, a ...interface{})
	Fatalf(format string, a ...interface{})
}

type defaultLogger struct {
	entry *logrus.Entry
}

// NewLogger returns a Logger whose lines are tagged with the module name.
func NewLogger(moduleName string) Logger {
	return &defaultLogger{
		entry: logrus.StandardLogger().WithField("module", moduleName),
	}
}

// SetLogLevel configures the process-wide log level; unknown levels keep info.
func SetLogLevel(level string) {
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		lv = logrus.InfoLevel
	}
	logrus.SetLevel(lv)
	logrus.SetOutput(os.Stdout)
}

func (l *defaultLogger) Debugf(format string, a ...interface{}) {
	l.entry.Debugf(format, a...)
}

func (l *defaultLogger) Infof(format string, a ...interface{}) {
	l.entry.Infof(format, a...)
}

func (l *defaultLogger) Warnf(format string, a ...interface{}) {
	l.entry.Warnf(format, a...)
}

func (l *defaultLogger) Errorf(format string, a ...interface{}) {
	l.entry.Errorf(format, a...)
}

func (l *defaultLogger) Fatalf(format string, a ...interface{}) {
	l.entry.Fatalf(format, a...)
}
