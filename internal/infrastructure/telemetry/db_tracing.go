package telemetry

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig controls query spans
type DBTracingConfig struct {
	Enabled bool
	// LogFullSQL keeps bound values in span statements; never in production
	LogFullSQL bool
	DBName     string
}

// RegisterDBTracing installs the otelgorm plugin so every query becomes a
// child span of the caller's context. Slow-query logging lives in the GORM
// logger, not here.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{}
	if cfg.DBName != "" {
		opts = append(opts, otelgorm.WithDBName(cfg.DBName))
	}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("failed to register otelgorm: %w", err)
	}
	logger.Info("database tracing enabled", zap.Bool("log_full_sql", cfg.LogFullSQL))
	return nil
}
