package utils

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the process-wide logger. JSON output keeps log
// lines machine-parseable in production; debug level is opt-in.
func InitLogger(level string) {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	if lvl, err := logrus.ParseLevel(strings.TrimSpace(level)); err == nil {
		logrus.SetLevel(lvl)
	}
}

// LogEvent emits a standardized event line with module/action/request_id.
// Avoid logging sensitive payloads; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	logrus.WithFields(logrus.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).Info(message)
}

// LogError mirrors LogEvent for failures that are handled but worth tracing,
// such as best-effort notification errors.
func LogError(requestID, module, action string, err error) {
	logrus.WithFields(logrus.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).WithError(err).Error("operation failed")
}
