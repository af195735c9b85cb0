package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/kanban-board/internal/utils"
)

type indexSpec struct {
	table   string
	name    string
	columns string
}

// boardIndexes back the board's hot paths: listing a project's tasks by lane
// and listing projects oldest first.
var boardIndexes = []indexSpec{
	{"tasks", "idx_tasks_project_status", "project_id, status"},
	{"tasks", "idx_tasks_created_at", "created_at"},
	{"projects", "idx_projects_created_at", "created_at"},
}

// AddIndexes creates the composite indexes AutoMigrate does not derive from
// struct tags. Existing indexes are skipped.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()
	for _, idx := range boardIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			utils.Log.Debug("index exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		utils.Log.Info("created index",
			zap.String("index", idx.name),
			zap.String("table", idx.table),
			zap.String("columns", idx.columns),
		)
	}

	return nil
}

// MigrateDatabase runs schema migration followed by index creation.
func MigrateDatabase(db *gorm.DB) error {
	if err := autoMigrate(db); err != nil {
		return err
	}
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}
	return nil
}
