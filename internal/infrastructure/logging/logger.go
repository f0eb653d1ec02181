package logging

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/trivnet/internal/infrastructure/config"
)

// NewLogger builds a configured logrus logger from application config.
// Logs go to stderr so game output on stdout stays clean.
func NewLogger(cfg *config.Config) (*logrus.Logger, error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
