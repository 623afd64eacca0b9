package app

import (
	"github.com/guttosm/combination-service/config"
	"github.com/guttosm/combination-service/internal/logger"
)

// InitializeLogger configures the global zerolog logger.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
}
