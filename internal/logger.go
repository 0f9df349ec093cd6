package internal

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a logrus logger writing to out. Lambdas log JSON so
// CloudWatch can index the fields; the simulator logs text to stderr.
func NewLogger(out io.Writer, level string, json bool) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)

	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(lvl)

	if json {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logger, nil
}
