package logging

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the application-wide logrus instance.
var Logger = logrus.New()

// InitLogger configures the global logger from the environment. When
// LOG_FILE is set, output goes to a size-rotated file instead of stderr.
func InitLogger() {
	Logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))

	if err != nil {
		level = logrus.InfoLevel
	}

	Logger.SetLevel(level)

	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		Logger.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
}
