package application

import (
	"io"

	"github.com/sirupsen/logrus"
)

func componentLogger(logger *logrus.Logger, component string) *logrus.Entry {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return logger.WithField("component", component)
}
