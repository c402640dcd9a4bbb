package stores

import (
	"errors"

	"github.com/taskflow-dev/taskflow/internal/models"
	"gorm.io/gorm"
)

// CreateTask inserts a task after checking that its project exists. The
// creator reference is required and immutable from here on. Assignees are
// not validated against project membership; the schema never required it.
func CreateTask(db *gorm.DB, task *models.Task) error {
	var project models.Project

	if err := db.First(&project, task.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConstraint
		}
		return err
	}

	if task.CreatorID == 0 {
		return ErrConstraint
	}

	return db.Create(task).Error
}

// ClearProjectAssignments unassigns every task in the project currently
// held by the user. Invoked alongside membership removal so departed
// members do not linger as assignees; the tasks themselves survive.
func ClearProjectAssignments(db *gorm.DB, projectID uint, userID uint) error {
	return db.Model(&models.Task{}).
		Where("project_id = ? AND assignee_id = ?", projectID, userID).
		Update("assignee_id", nil).Error
}

// DeleteTask removes the task with its comments, attachments and tag
// links in one transaction. Returns the stored paths of deleted
// attachments so the caller can remove the blobs afterwards.
func DeleteTask(db *gorm.DB, taskID uint) ([]string, error) {
	var orphanedBlobs []string

	err := db.Transaction(func(tx *gorm.DB) error {
		var task models.Task

		if err := tx.First(&task, taskID).Error; err != nil {
			return notFound(err)
		}

		paths, err := deleteTaskTx(tx, taskID)
		if err != nil {
			return err
		}

		orphanedBlobs = paths
		return nil
	})

	if err != nil {
		return nil, err
	}

	return orphanedBlobs, nil
}

// deleteTaskTx performs the per-task cascade inside an open transaction.
func deleteTaskTx(tx *gorm.DB, taskID uint) ([]string, error) {
	var attachments []models.Attachment

	if err := tx.Where("task_id = ?", taskID).Find(&attachments).Error; err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(attachments))

	for _, attachment := range attachments {
		paths = append(paths, attachment.StoredPath)
	}

	if err := tx.Unscoped().Where("task_id = ?", taskID).Delete(&models.Attachment{}).Error; err != nil {
		return nil, err
	}

	if err := tx.Unscoped().Where("task_id = ?", taskID).Delete(&models.Comment{}).Error; err != nil {
		return nil, err
	}

	if err := tx.Exec("DELETE FROM task_tags WHERE task_id = ?", taskID).Error; err != nil {
		return nil, err
	}

	if err := tx.Unscoped().Delete(&models.Task{}, taskID).Error; err != nil {
		return nil, err
	}

	return paths, nil
}
