package logger

import (
	"os"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

var logger = log.New()

func init() {
	// Structured JSON to stdout; plays well with systemd/docker log capture.
	logger.Out = os.Stdout
	logger.Formatter = &log.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	}

	level := log.InfoLevel
	if lvl, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		level = lvl
	}
	logger.SetLevel(level)
}

// GetLogger returns an entry annotated with the calling function and line so
// output can be traced back without grepping.
func GetLogger() *log.Entry {
	pc, file, line, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)

	return logger.WithFields(log.Fields{
		"function": fn.Name(),
		"file":     file,
		"line":     line,
	})
}
