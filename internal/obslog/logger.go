// Package obslog builds the logrus logger instances this module passes
// around, using the logrus.New + ParseLevel pattern rather than a
// package-level global.
package obslog

import "github.com/sirupsen/logrus"

// New builds a logrus.Logger at the given level name ("debug", "info",
// "warn", "error", ...). An empty or unrecognized level falls back to Info.
func New(level string) *logrus.Logger {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
