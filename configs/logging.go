package configs

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogrus configures the global logger. An unparsable level falls back
// to info.
func InitLogrus(level string) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
