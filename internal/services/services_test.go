package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/kanban-board/internal/models"
	"github.com/yukikurage/kanban-board/internal/repository"
)

type testEnv struct {
	db       *gorm.DB
	projects *ProjectService
	tasks    *TaskService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.Project{}, &models.Task{}))

	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	return &testEnv{
		db:       db,
		projects: NewProjectService(projectRepo),
		tasks:    NewTaskService(taskRepo, projectRepo),
	}
}

func (e *testEnv) createProject(t *testing.T, name string) *models.Project {
	t.Helper()
	project := &models.Project{Name: name, Description: name + " description"}
	require.NoError(t, e.db.Create(project).Error)
	return project
}

func (e *testEnv) createTask(t *testing.T, projectID, title string, status models.TaskStatus) *models.Task {
	t.Helper()
	task := &models.Task{ProjectID: projectID, Title: title, Description: title + " description", Status: status}
	require.NoError(t, e.db.Create(task).Error)
	return task
}

var ctx = context.Background()
