package log

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

func init() {
	logger = newLogger(os.Stdout, logrus.InfoLevel, &logrus.TextFormatter{FullTimestamp: true})
}

func newLogger(out io.Writer, level logrus.Level, formatter logrus.Formatter) *logrus.Logger {
	return &logrus.Logger{
		Out:       out,
		Formatter: formatter,
		Hooks:     make(logrus.LevelHooks),
		Level:     level,
	}
}

// Setup replaces the package logger. Production environments log JSON,
// everything else logs human readable text.
func Setup(levelName, environment string) error {
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	var formatter logrus.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if environment == "prod" {
		formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		}
	}

	logger = newLogger(os.Stdout, level, formatter)
	return nil
}

// SetOutput redirects log output, mostly useful in tests
func SetOutput(out io.Writer) {
	logger.SetOutput(out)
}

func Info(msg string, args ...any) {
	logger.Infof(msg, args...)
}

func Debug(msg string, args ...any) {
	logger.Debugf(msg, args...)
}

func Warn(msg string, args ...any) {
	logger.Warnf(msg, args...)
}

func Error(msg string, args ...any) {
	logger.Errorf(msg, args...)
}

// WithFields returns an entry that attaches the given fields to every line it logs
func WithFields(fields map[string]any) *logrus.Entry {
	return logger.WithFields(logrus.Fields(fields))
}
