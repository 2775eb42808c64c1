package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func init() {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)

	// Set log level from environment or default to Info
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		Log.SetLevel(level)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}

	// Use JSON formatter for structured logs
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
}
