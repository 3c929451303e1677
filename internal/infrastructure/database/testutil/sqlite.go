// Package testutil opens throwaway, fully migrated SQLite databases for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"labmanager/internal/infrastructure/database"
	"labmanager/internal/infrastructure/migration"
	"labmanager/internal/shared/config"
)

// NewDB returns an in-memory database with every table created. It is closed
// when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)

	strategy := migration.NewGormAutoMigrateStrategy()
	require.NoError(t, strategy.Migrate(context.Background(), gdb, migration.AutoMigrateModels()...))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}
