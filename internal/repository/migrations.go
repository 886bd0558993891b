package repository

import (
	"fmt"

	"github.com/fuzumoe/siteinsight-backend/internal/model"
)

// Migrator is the part of *gorm.DB used for schema migration.
type Migrator interface {
	AutoMigrate(dst ...any) error
}

// Migrate creates or updates the crawl tables. Parents are migrated before
// the tables that reference them.
func Migrate(m Migrator) error {
	if err := m.AutoMigrate(model.AllModels...); err != nil {
		return fmt.Errorf("auto-migrate crawl schema: %w", err)
	}
	return nil
}
