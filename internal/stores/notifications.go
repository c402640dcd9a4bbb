package stores

import (
	"github.com/taskflow-dev/taskflow/internal/models"
	"gorm.io/gorm"
)

// CreateNotification appends a message to the user's notification log.
func CreateNotification(db *gorm.DB, userID uint, content string, link string) (*models.Notification, error) {
	notification := models.Notification{
		UserID:  userID,
		Content: content,
		Link:    link,
	}

	if err := db.Create(&notification).Error; err != nil {
		return nil, err
	}

	return &notification, nil
}

// ListNotifications returns the user's notifications newest first,
// optionally restricted to unread ones.
func ListNotifications(db *gorm.DB, userID uint, unreadOnly bool) ([]models.Notification, error) {
	query := db.Where("user_id = ?", userID)

	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification

	if err := query.Order("created_at DESC, id DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkNotificationRead flips the read flag on one of the user's
// notifications. ErrNotFound when the id does not belong to the user.
func MarkNotificationRead(db *gorm.DB, userID uint, notificationID uint) error {
	var notification models.Notification

	err := db.Where("id = ? AND user_id = ?", notificationID, userID).First(&notification).Error

	if err != nil {
		return notFound(err)
	}

	return db.Model(&notification).UpdateColumn("read", true).Error
}

// MarkAllNotificationsRead flips the read flag on everything unread.
func MarkAllNotificationsRead(db *gorm.DB, userID uint) error {
	return db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		UpdateColumn("read", true).Error
}

// CountUnreadNotifications returns the user's unread count.
func CountUnreadNotifications(db *gorm.DB, userID uint) (int64, error) {
	var count int64

	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error

	return count, err
}
