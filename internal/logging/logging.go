package logging

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logger and returns it. An unknown level
// falls back to info and an unknown format to text; both are reported.
func Init(level, format string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetOutput(os.Stderr)
	if err := Configure(log, level, format); err != nil {
		log.WithError(err).Warn("logging configuration partly ignored")
	}
	return log
}

// Configure applies level and format to log. Invalid values leave the
// defaults in place and are returned as an error.
func Configure(log *logrus.Logger, level, format string) error {
	var errs []error

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	log.SetLevel(lvl)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		log.SetFormatter(textFormatter())
	default:
		log.SetFormatter(textFormatter())
		errs = append(errs, fmt.Errorf("log format: unknown %q", format))
	}
	return errors.Join(errs...)
}

func textFormatter() *logrus.TextFormatter {
	return &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"}
}
