package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/models"
)

func TestUpdateProjectAdminOnly(t *testing.T) {
	r := newTestRouter(t)

	admin := seedUser(t, "alice")
	manager := seedUser(t, "bob")
	member := seedUser(t, "carol")

	project := seedProject(t, "Website")
	seedMembership(t, project.ID, admin.ID, "admin")
	seedMembership(t, project.ID, manager.ID, "manager")
	seedMembership(t, project.ID, member.ID, "member")

	path := fmt.Sprintf("/api/projects/%d", project.ID)
	body := gin.H{"title": "Website v2", "status": "archived"}

	res := doRequest(t, r, "PATCH", path, bearerFor(t, member), body)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = doRequest(t, r, "PATCH", path, bearerFor(t, manager), body)
	assert.Equal(t, http.StatusForbidden, res.Code, "managers cannot edit the project itself")

	res = doRequest(t, r, "PATCH", path, bearerFor(t, admin), body)
	assert.Equal(t, http.StatusOK, res.Code)

	var reloaded models.Project
	require.NoError(t, db.DB.First(&reloaded, project.ID).Error)
	assert.Equal(t, "Website v2", reloaded.Title)
	assert.Equal(t, "archived", reloaded.Status)
}
