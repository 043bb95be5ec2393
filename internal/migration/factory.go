package migration

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewMigratorFromGorm creates a migrator over the connection pool of db,
// typically opened with store.OpenDatabase. driver is the configured
// database driver name.
func NewMigratorFromGorm(db *gorm.DB, driver string, logger *zap.Logger) (*DefaultMigrator, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}

	dbType, err := ParseDatabaseType(driver)
	if err != nil {
		return nil, fmt.Errorf("invalid database type: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	return NewMigrator(sqlDB, &Config{DatabaseType: dbType}, logger)
}
