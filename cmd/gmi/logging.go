package main

import (
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-gmi/internal/config"
)

// newLogger returns a text logger at info level writing to w.
func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return log
}

// configureLogger applies the log section of cfg, then the quiet/verbose flags.
// --verbose wins over --quiet; both win over the config level.
func configureLogger(log *logrus.Logger, cfg config.LogConfig, quiet, verbose bool) {
	switch strings.ToLower(cfg.Format) {
	case config.LogFormatJSON:
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	default:
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	level := logrus.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case config.LogLevelDebug:
		level = logrus.DebugLevel
	case config.LogLevelWarn:
		level = logrus.WarnLevel
	case config.LogLevelError:
		level = logrus.ErrorLevel
	}
	if quiet {
		level = logrus.ErrorLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
}
