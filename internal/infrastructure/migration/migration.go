// Package migration creates and evolves the database schema: embedded goose
// SQL scripts for MySQL, gorm AutoMigrate for SQLite development databases.
package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"labmanager/internal/domain/user"
	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy matching the database driver.
func NewManager(driver string) *Manager {
	var strategy Strategy
	switch driver {
	case "sqlite":
		strategy = NewGormAutoMigrateStrategy()
	default:
		strategy = NewGooseStrategy("mysql")
	}
	return NewManagerWithStrategy(strategy)
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// Migrate brings the schema up to date.
func (m *Manager) Migrate(ctx context.Context, db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(ctx, db, AutoMigrateModels()...); err != nil {
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// Goose returns the versioned strategy, or nil when the manager derives the
// schema from models and has no versions to roll back or report.
func (m *Manager) Goose() *GooseStrategy {
	g, _ := m.strategy.(*GooseStrategy)
	return g
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// SeedRoles makes sure every built-in role exists.
func SeedRoles(ctx context.Context, repo user.Repository) error {
	if err := repo.EnsureRoles(ctx, constants.AllRoles); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	return nil
}
