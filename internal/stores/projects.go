package stores

import (
	"github.com/taskflow-dev/taskflow/internal/models"
	"gorm.io/gorm"
)

// CreateProject inserts the project and adds the creator as its first
// admin, both in one transaction.
func CreateProject(db *gorm.DB, project *models.Project, creatorID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		membership := models.Membership{
			ProjectID: project.ID,
			UserID:    creatorID,
			Role:      "admin",
		}

		return tx.Create(&membership).Error
	})
}

// DeleteProject removes the project together with everything it owns:
// tasks (and their comments, attachments and tag links) and memberships.
// Tag records themselves survive; they are shared, never owned.
//
// The cascade is spelled out here rather than left to the schema so the
// delete rules stay visible and testable in one place. Returned paths are
// the stored blobs of deleted attachments; the caller removes them from
// disk after the transaction commits.
func DeleteProject(db *gorm.DB, projectID uint) ([]string, error) {
	var orphanedBlobs []string

	err := db.Transaction(func(tx *gorm.DB) error {
		var project models.Project

		if err := tx.First(&project, projectID).Error; err != nil {
			return notFound(err)
		}

		var tasks []models.Task

		if err := tx.Where("project_id = ?", projectID).Find(&tasks).Error; err != nil {
			return err
		}

		for _, task := range tasks {
			paths, err := deleteTaskTx(tx, task.ID)
			if err != nil {
				return err
			}
			orphanedBlobs = append(orphanedBlobs, paths...)
		}

		if err := tx.Unscoped().Where("project_id = ?", projectID).Delete(&models.Membership{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&project).Error
	})

	if err != nil {
		return nil, err
	}

	return orphanedBlobs, nil
}
