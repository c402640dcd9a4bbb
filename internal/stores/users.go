package stores

import (
	"github.com/taskflow-dev/taskflow/internal/models"
	"gorm.io/gorm"
)

// CreateUser inserts the user together with an empty profile, in one
// transaction. Every user has exactly one profile for its whole lifetime.
func CreateUser(db *gorm.DB, user *models.User) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		profile := models.Profile{
			UserID:                  user.ID,
			NotificationPreferences: []byte("{}"),
		}

		return tx.Create(&profile).Error
	})
}

// DeleteUser removes the user and applies every per-entity delete rule:
//
//   - tasks the user created are deleted, cascading to their comments,
//     attachments and tag links;
//   - tasks merely assigned to the user survive with the assignee cleared;
//   - the user's own comments, attachments, memberships, notifications and
//     profile are deleted.
//
// Returns stored blob paths of every attachment that went away so the
// caller can clean the disk after commit.
func DeleteUser(db *gorm.DB, userID uint) ([]string, error) {
	var orphanedBlobs []string

	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User

		if err := tx.First(&user, userID).Error; err != nil {
			return notFound(err)
		}

		var createdTasks []models.Task

		if err := tx.Where("creator_id = ?", userID).Find(&createdTasks).Error; err != nil {
			return err
		}

		for _, task := range createdTasks {
			paths, err := deleteTaskTx(tx, task.ID)
			if err != nil {
				return err
			}
			orphanedBlobs = append(orphanedBlobs, paths...)
		}

		if err := tx.Model(&models.Task{}).
			Where("assignee_id = ?", userID).
			Update("assignee_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("author_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		var uploads []models.Attachment

		if err := tx.Where("uploader_id = ?", userID).Find(&uploads).Error; err != nil {
			return err
		}

		for _, attachment := range uploads {
			orphanedBlobs = append(orphanedBlobs, attachment.StoredPath)
		}

		if err := tx.Unscoped().Where("uploader_id = ?", userID).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Membership{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&user).Error
	})

	if err != nil {
		return nil, err
	}

	return orphanedBlobs, nil
}
