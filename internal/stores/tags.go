package stores

import (
	"errors"

	"github.com/taskflow-dev/taskflow/internal/models"
	"gorm.io/gorm"
)

// AttachTag labels the task with the named tag, creating the tag record if
// it does not exist yet. Names match case-sensitively. Attaching the same
// name twice is a no-op: the pair holds at most one association.
func AttachTag(db *gorm.DB, taskID uint, name string) (*models.Tag, error) {
	var task models.Task

	if err := db.First(&task, taskID).Error; err != nil {
		return nil, notFound(err)
	}

	var tag models.Tag

	err := db.Where("name = ?", name).First(&tag).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		tag = models.Tag{Name: name}
		err = db.Create(&tag).Error
	}

	if err != nil {
		return nil, err
	}

	var count int64

	if err := db.Table("task_tags").
		Where("task_id = ? AND tag_id = ?", taskID, tag.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	if count > 0 {
		return &tag, nil
	}

	if err := db.Exec("INSERT INTO task_tags (task_id, tag_id) VALUES (?, ?)", taskID, tag.ID).Error; err != nil {
		return nil, err
	}

	return &tag, nil
}

// DetachTag removes the association between the task and the named tag.
// The tag record itself is never deleted, even if nothing references it
// anymore.
func DetachTag(db *gorm.DB, taskID uint, name string) error {
	var tag models.Tag

	if err := db.Where("name = ?", name).First(&tag).Error; err != nil {
		return notFound(err)
	}

	result := db.Exec("DELETE FROM task_tags WHERE task_id = ? AND tag_id = ?", taskID, tag.ID)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// TagsOf returns the task's tag names in alphabetical order.
func TagsOf(db *gorm.DB, taskID uint) ([]string, error) {
	var names []string

	err := db.Table("tags").
		Joins("JOIN task_tags ON task_tags.tag_id = tags.id").
		Where("task_tags.task_id = ?", taskID).
		Order("tags.name ASC").
		Pluck("tags.name", &names).Error

	if err != nil {
		return nil, err
	}

	return names, nil
}
