package observability

import (
	"strings"

	"github.com/invoiceflow/invoiceflow/internal/config"
)

// Config carries the observability knobs derived from app configuration.
type Config struct {
	ServiceName string
	Environment string
	Version     string
	LogLevel    string
	LogFormat   string
}

func LoadConfig(cfg config.Config) Config {
	return Config{
		ServiceName: cfg.AppName,
		Environment: cfg.Environment,
		Version:     cfg.AppVersion,
		LogLevel:    cfg.LogLevel,
		LogFormat:   cfg.LogFormat,
	}
}

func (c Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}
