// Package logger configures logrus for the server and provides the field
// helpers the engines and handlers log through.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	jsonTimestamp = "2006-01-02T15:04:05.000Z07:00"
	textTimestamp = "2006-01-02 15:04:05"
)

// InitLogger builds the process logger. An empty level falls back to
// LOG_LEVEL, then to debug in development and info elsewhere. Output is JSON
// outside development or when LOG_FORMAT=json.
func InitLogger(logLevel string, isDevelopment bool) *logrus.Logger {
	return newLogger(os.Stdout, logLevel, isDevelopment)
}

func newLogger(out io.Writer, logLevel string, isDevelopment bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel == "" {
		logLevel = "info"
		if isDevelopment {
			logLevel = "debug"
		}
	}

	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		level = logrus.InfoLevel
		defer log.WithField("invalid_level", logLevel).Warn("Invalid LOG_LEVEL, using INFO")
	}
	log.SetLevel(level)

	if !isDevelopment || strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: jsonTimestamp})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: textTimestamp,
			ForceColors:     true,
		})
	}

	return log
}

// Discard returns a logger that drops everything. Engines fall back to it when
// constructed without a logger.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// WithGameContext scopes a logger to a single live game analysis
func WithGameContext(log *logrus.Logger, gameID string) *logrus.Entry {
	return log.WithField("game_id", gameID)
}

// WithPropContext scopes a logger to a single prop evaluation
func WithPropContext(log *logrus.Logger, player, statType string) *logrus.Entry {
	fields := logrus.Fields{"stat_type": statType}
	if player != "" {
		fields["player"] = player
	}
	return log.WithFields(fields)
}

func WithRequestContext(log *logrus.Logger, requestID, method, path string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
	})
}
