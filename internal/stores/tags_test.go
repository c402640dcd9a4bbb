package stores

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskflow-dev/taskflow/internal/models"
)

func TestAttachTag(t *testing.T) {
	t.Run("creates the tag on first use", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		project := createTestProject(t, db, "Website")
		task := createTestTask(t, db, project.ID, user.ID, "Write docs")

		tag, err := AttachTag(db, task.ID, "urgent")
		require.NoError(t, err)
		assert.NotZero(t, tag.ID)
		assert.Equal(t, "urgent", tag.Name)
	})

	t.Run("is idempotent", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		project := createTestProject(t, db, "Website")
		task := createTestTask(t, db, project.ID, user.ID, "Write docs")

		first, err := AttachTag(db, task.ID, "urgent")
		require.NoError(t, err)

		second, err := AttachTag(db, task.ID, "urgent")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		var links int64
		require.NoError(t, db.Table("task_tags").Where("task_id = ?", task.ID).Count(&links).Error)
		assert.EqualValues(t, 1, links, "exactly one association after attaching twice")

		assert.EqualValues(t, 1, countRows(t, db, &models.Tag{}, "name = ?", "urgent"))
	})

	t.Run("reuses an existing tag across tasks", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		project := createTestProject(t, db, "Website")
		first := createTestTask(t, db, project.ID, user.ID, "Write docs")
		second := createTestTask(t, db, project.ID, user.ID, "Review docs")

		tagA, err := AttachTag(db, first.ID, "docs")
		require.NoError(t, err)
		tagB, err := AttachTag(db, second.ID, "docs")
		require.NoError(t, err)

		assert.Equal(t, tagA.ID, tagB.ID)
		assert.EqualValues(t, 1, countRows(t, db, &models.Tag{}, "name = ?", "docs"))
	})

	t.Run("names are case-sensitive", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		project := createTestProject(t, db, "Website")
		task := createTestTask(t, db, project.ID, user.ID, "Write docs")

		_, err := AttachTag(db, task.ID, "urgent")
		require.NoError(t, err)
		_, err = AttachTag(db, task.ID, "Urgent")
		require.NoError(t, err)

		tags, err := TagsOf(db, task.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Urgent", "urgent"}, tags)
	})

	t.Run("missing task", func(t *testing.T) {
		db := newTestDB(t)

		_, err := AttachTag(db, 42, "urgent")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDetachTag(t *testing.T) {
	t.Run("removes only the association", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		project := createTestProject(t, db, "Website")
		task := createTestTask(t, db, project.ID, user.ID, "Write docs")

		_, err := AttachTag(db, task.ID, "urgent")
		require.NoError(t, err)

		require.NoError(t, DetachTag(db, task.ID, "urgent"))

		var links int64
		require.NoError(t, db.Table("task_tags").Where("task_id = ?", task.ID).Count(&links).Error)
		assert.Zero(t, links)

		// The orphaned tag record stays.
		assert.EqualValues(t, 1, countRows(t, db, &models.Tag{}, "name = ?", "urgent"))
	})

	t.Run("unknown tag name", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		project := createTestProject(t, db, "Website")
		task := createTestTask(t, db, project.ID, user.ID, "Write docs")

		assert.ErrorIs(t, DetachTag(db, task.ID, "nope"), ErrNotFound)
	})

	t.Run("tag exists but is not attached", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice")
		project := createTestProject(t, db, "Website")
		tagged := createTestTask(t, db, project.ID, user.ID, "Write docs")
		bare := createTestTask(t, db, project.ID, user.ID, "Review docs")

		_, err := AttachTag(db, tagged.ID, "urgent")
		require.NoError(t, err)

		assert.ErrorIs(t, DetachTag(db, bare.ID, "urgent"), ErrNotFound)
	})
}
