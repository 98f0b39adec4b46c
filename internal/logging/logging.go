// Package logging constructs the logger injected into every pipeline
// component. Initialization happens once at program entry; library code
// never reconfigures logging.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logger writing to stderr and, when logFile is non-empty,
// to that file as well. An unopenable log file degrades to stderr-only
// with a warning; logging setup never fails the program.
func New(level, logFile string) *logrus.Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	out := io.Writer(os.Stderr)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Warnf("cannot open log file %s, logging to stderr only: %v", logFile, err)
		} else {
			out = io.MultiWriter(os.Stderr, file)
		}
	}
	log.SetOutput(out)

	if err != nil {
		log.Warnf("invalid log level %q, using info", level)
	}
	return log
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
