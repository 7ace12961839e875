package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pulse-inc/pulse/internal/infrastructure/database"
	"github.com/pulse-inc/pulse/internal/shared/config"
	"github.com/pulse-inc/pulse/internal/shared/logger"
)

// Manager runs the strategy chosen by configuration.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager uses GORM AutoMigrate when database.auto_migrate is set and
// the versioned goose scripts otherwise.
func NewManager(cfg *config.DatabaseConfig) *Manager {
	var strategy Strategy
	if cfg.AutoMigrate {
		strategy = NewGormAutoMigrateStrategy()
	} else {
		strategy = NewGooseStrategy(database.GooseDialect(cfg.Driver))
	}
	return NewManagerWithStrategy(strategy)
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.WithComponent("migration.manager"),
	}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
