package logging

import (
	"github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger. Components log through the
// package-level logrus functions so nothing needs a logger plumbed in.
func Setup(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}
