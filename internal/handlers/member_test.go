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

func TestAddMemberAdminOnly(t *testing.T) {
	r := newTestRouter(t)

	admin := seedUser(t, "alice")
	manager := seedUser(t, "bob")
	outsider := seedUser(t, "carol")

	project := seedProject(t, "Website")
	seedMembership(t, project.ID, admin.ID, "admin")
	seedMembership(t, project.ID, manager.ID, "manager")

	path := fmt.Sprintf("/api/projects/%d/members", project.ID)
	body := gin.H{"email": outsider.Email, "role": "member"}

	res := doRequest(t, r, "POST", path, bearerFor(t, manager), body)
	assert.Equal(t, http.StatusForbidden, res.Code, "managers cannot add members")

	res = doRequest(t, r, "POST", path, bearerFor(t, admin), body)
	assert.Equal(t, http.StatusCreated, res.Code)

	res = doRequest(t, r, "POST", path, bearerFor(t, admin), body)
	assert.Equal(t, http.StatusConflict, res.Code, "adding an existing member conflicts")
}

func TestUpdateMemberRoleLastAdminGuard(t *testing.T) {
	r := newTestRouter(t)

	admin := seedUser(t, "alice")
	member := seedUser(t, "bob")

	project := seedProject(t, "Website")
	seedMembership(t, project.ID, admin.ID, "admin")
	seedMembership(t, project.ID, member.ID, "member")

	demote := gin.H{"role": "member"}
	path := fmt.Sprintf("/api/projects/%d/members/%d", project.ID, admin.ID)

	res := doRequest(t, r, "PATCH", path, bearerFor(t, admin), demote)
	assert.Equal(t, http.StatusBadRequest, res.Code, "the sole admin cannot be demoted")

	promotePath := fmt.Sprintf("/api/projects/%d/members/%d", project.ID, member.ID)
	res = doRequest(t, r, "PATCH", promotePath, bearerFor(t, admin), gin.H{"role": "admin"})
	require.Equal(t, http.StatusOK, res.Code)

	res = doRequest(t, r, "PATCH", path, bearerFor(t, admin), demote)
	assert.Equal(t, http.StatusOK, res.Code, "demotion is fine once another admin exists")

	var membership models.Membership
	require.NoError(t, db.DB.Where("project_id = ? AND user_id = ?", project.ID, admin.ID).First(&membership).Error)
	assert.Equal(t, "member", membership.Role)
}

func TestRemoveMemberSelfRemovalGuard(t *testing.T) {
	r := newTestRouter(t)

	admin := seedUser(t, "alice")
	project := seedProject(t, "Website")
	seedMembership(t, project.ID, admin.ID, "admin")

	path := fmt.Sprintf("/api/projects/%d/members/%d", project.ID, admin.ID)

	res := doRequest(t, r, "DELETE", path, bearerFor(t, admin), nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	var count int64
	require.NoError(t, db.DB.Model(&models.Membership{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "the membership must survive")
}

func TestRemoveMemberClearsTheirAssignments(t *testing.T) {
	r := newTestRouter(t)

	admin := seedUser(t, "alice")
	member := seedUser(t, "bob")

	project := seedProject(t, "Website")
	seedMembership(t, project.ID, admin.ID, "admin")
	seedMembership(t, project.ID, member.ID, "member")

	assigned := seedTask(t, project.ID, admin.ID, &member.ID, "Deploy")
	created := seedTask(t, project.ID, member.ID, nil, "Write docs")

	path := fmt.Sprintf("/api/projects/%d/members/%d", project.ID, member.ID)

	res := doRequest(t, r, "DELETE", path, bearerFor(t, admin), nil)
	require.Equal(t, http.StatusNoContent, res.Code)

	var membershipCount int64
	require.NoError(t, db.DB.Model(&models.Membership{}).
		Where("project_id = ? AND user_id = ?", project.ID, member.ID).
		Count(&membershipCount).Error)
	assert.Zero(t, membershipCount)

	var reloaded models.Task
	require.NoError(t, db.DB.First(&reloaded, assigned.ID).Error)
	assert.Nil(t, reloaded.AssigneeID, "tasks assigned to the leaver are unassigned")

	reloaded = models.Task{}
	require.NoError(t, db.DB.First(&reloaded, created.ID).Error)
	assert.Equal(t, member.ID, reloaded.CreatorID, "tasks the leaver created stay")
}
