package stores

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskflow-dev/taskflow/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// newTestDB opens a unique in-memory database per test to avoid
// concurrency issues between parallel tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	counter := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:test_%d.db?mode=memory&cache=shared", counter)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Project{},
		&models.Membership{},
		&models.Task{},
		&models.Tag{},
		&models.Comment{},
		&models.Attachment{},
		&models.Notification{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)

	return user
}

func createTestProject(t *testing.T, db *gorm.DB, title string) *models.Project {
	t.Helper()

	project := &models.Project{Title: title, Status: "active"}
	require.NoError(t, db.Create(project).Error)

	return project
}

func createTestTask(t *testing.T, db *gorm.DB, projectID uint, creatorID uint, title string) *models.Task {
	t.Helper()

	task := &models.Task{
		ProjectID: projectID,
		CreatorID: creatorID,
		Title:     title,
		Status:    "todo",
		Priority:  "medium",
	}
	require.NoError(t, db.Create(task).Error)

	return task
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&count).Error)

	return count
}
