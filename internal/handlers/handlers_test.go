package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/router"
	"github.com/taskflow-dev/taskflow/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// newTestRouter wires the real route table against a fresh in-memory
// database, so requests run through the auth middleware and the handlers'
// permission checks end to end.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "handler-test-secret")
	require.NoError(t, auth.InitJWTSecret())
	require.NoError(t, storage.InitStore(t.TempDir()))

	counter := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:handler_test_%d.db?mode=memory&cache=shared", counter)

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = conn.AutoMigrate(
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

	db.DB = conn

	return router.NewRouter()
}

func seedUser(t *testing.T, name string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "x",
	}
	require.NoError(t, db.DB.Create(user).Error)

	return user
}

func seedProject(t *testing.T, title string) *models.Project {
	t.Helper()

	project := &models.Project{Title: title, Status: "active"}
	require.NoError(t, db.DB.Create(project).Error)

	return project
}

func seedMembership(t *testing.T, projectID, userID uint, role string) {
	t.Helper()

	membership := &models.Membership{ProjectID: projectID, UserID: userID, Role: role}
	require.NoError(t, db.DB.Create(membership).Error)
}

func seedTask(t *testing.T, projectID, creatorID uint, assigneeID *uint, title string) *models.Task {
	t.Helper()

	task := &models.Task{
		ProjectID:  projectID,
		CreatorID:  creatorID,
		AssigneeID: assigneeID,
		Title:      title,
		Status:     "todo",
		Priority:   "medium",
	}
	require.NoError(t, db.DB.Create(task).Error)

	return task
}

func bearerFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := auth.GenerateJWT(user.ID, user.Email)
	require.NoError(t, err)

	return token
}

func doRequest(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)

	return recorder
}
