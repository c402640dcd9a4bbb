package stores

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskflow-dev/taskflow/internal/models"
)

func TestAddMember(t *testing.T) {
	t.Run("successful membership creation", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		project := createTestProject(t, db, "Website")

		membership, err := AddMember(db, project.ID, user.ID, "manager")
		require.NoError(t, err)
		assert.NotZero(t, membership.ID)
		assert.Equal(t, "manager", membership.Role)
		assert.WithinDuration(t, time.Now(), membership.CreatedAt, time.Minute)
	})

	t.Run("same pair twice fails with duplicate", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		project := createTestProject(t, db, "Website")

		_, err := AddMember(db, project.ID, user.ID, "member")
		require.NoError(t, err)

		_, err = AddMember(db, project.ID, user.ID, "admin")
		assert.ErrorIs(t, err, ErrDuplicateMembership)

		assert.EqualValues(t, 1, countRows(t, db, &models.Membership{}, "project_id = ?", project.ID))
	})

	t.Run("same user in two projects is fine", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		first := createTestProject(t, db, "Website")
		second := createTestProject(t, db, "Mobile App")

		_, err := AddMember(db, first.ID, user.ID, "member")
		require.NoError(t, err)

		_, err = AddMember(db, second.ID, user.ID, "admin")
		assert.NoError(t, err)
	})
}

func TestUpdateRole(t *testing.T) {
	t.Run("overwrites role in place", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		project := createTestProject(t, db, "Website")

		membership, err := AddMember(db, project.ID, user.ID, "member")
		require.NoError(t, err)
		joined := membership.CreatedAt

		// Any role may become any other role.
		require.NoError(t, UpdateRole(db, project.ID, user.ID, "admin"))
		require.NoError(t, UpdateRole(db, project.ID, user.ID, "member"))

		var updated models.Membership
		require.NoError(t, db.Where("project_id = ? AND user_id = ?", project.ID, user.ID).First(&updated).Error)
		assert.Equal(t, "member", updated.Role)
		assert.Equal(t, joined.Unix(), updated.CreatedAt.Unix(), "joined timestamp must not change")
	})

	t.Run("missing membership", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		project := createTestProject(t, db, "Website")

		err := UpdateRole(db, project.ID, user.ID, "admin")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRemoveMember(t *testing.T) {
	t.Run("deletes the membership row", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		project := createTestProject(t, db, "Website")

		_, err := AddMember(db, project.ID, user.ID, "member")
		require.NoError(t, err)

		require.NoError(t, RemoveMember(db, project.ID, user.ID))

		_, err = RoleOf(db, project.ID, user.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing membership", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		project := createTestProject(t, db, "Website")

		err := RemoveMember(db, project.ID, user.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("user can rejoin after removal", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		project := createTestProject(t, db, "Website")

		_, err := AddMember(db, project.ID, user.ID, "admin")
		require.NoError(t, err)
		require.NoError(t, RemoveMember(db, project.ID, user.ID))

		_, err = AddMember(db, project.ID, user.ID, "member")
		assert.NoError(t, err)

		role, err := RoleOf(db, project.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "member", role)
	})

	t.Run("does not touch the member's tasks", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		project := createTestProject(t, db, "Website")

		_, err := AddMember(db, project.ID, user.ID, "member")
		require.NoError(t, err)

		task := createTestTask(t, db, project.ID, user.ID, "Write docs")
		task.AssigneeID = &user.ID
		require.NoError(t, db.Save(task).Error)

		require.NoError(t, RemoveMember(db, project.ID, user.ID))

		var kept models.Task
		require.NoError(t, db.First(&kept, task.ID).Error)
		require.NotNil(t, kept.AssigneeID)
		assert.Equal(t, user.ID, *kept.AssigneeID)
	})
}

func TestRoleOf(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	outsider := createTestUser(t, db, "bob")
	project := createTestProject(t, db, "Website")

	_, err := AddMember(db, project.ID, user.ID, "manager")
	require.NoError(t, err)

	role, err := RoleOf(db, project.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "manager", role)

	_, err = RoleOf(db, project.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListMembers(t *testing.T) {
	db := newTestDB(t)
	project := createTestProject(t, db, "Website")

	first := createTestUser(t, db, "alice")
	second := createTestUser(t, db, "bob")
	third := createTestUser(t, db, "carol")

	for _, user := range []*models.User{first, second, third} {
		_, err := AddMember(db, project.ID, user.ID, "member")
		require.NoError(t, err)
	}

	members, err := ListMembers(db, project.ID)
	require.NoError(t, err)
	require.Len(t, members, 3)

	// Ordered by join time ascending.
	assert.Equal(t, first.ID, members[0].UserID)
	assert.Equal(t, second.ID, members[1].UserID)
	assert.Equal(t, third.ID, members[2].UserID)

	assert.Equal(t, "alice", members[0].User.Name, "users should be preloaded")
}

func TestCountAdmins(t *testing.T) {
	db := newTestDB(t)
	project := createTestProject(t, db, "Website")
	admin := createTestUser(t, db, "alice")
	member := createTestUser(t, db, "bob")

	_, err := AddMember(db, project.ID, admin.ID, "admin")
	require.NoError(t, err)
	_, err = AddMember(db, project.ID, member.ID, "member")
	require.NoError(t, err)

	count, err := CountAdmins(db, project.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
