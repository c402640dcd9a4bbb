package stores

import (
	"errors"

	"github.com/taskflow-dev/taskflow/internal/models"
	"gorm.io/gorm"
)

// AddMember creates a membership binding user to project with the given
// role. The (user, project) pair is unique; adding it twice fails with
// ErrDuplicateMembership.
func AddMember(db *gorm.DB, projectID uint, userID uint, role string) (*models.Membership, error) {
	var existing models.Membership

	err := db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&existing).Error

	if err == nil {
		return nil, ErrDuplicateMembership
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	membership := models.Membership{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}

	if err := db.Create(&membership).Error; err != nil {
		return nil, err
	}

	return &membership, nil
}

// UpdateRole overwrites the member's role in place. The joined timestamp
// is left untouched. Any role may become any other role.
func UpdateRole(db *gorm.DB, projectID uint, userID uint, role string) error {
	var membership models.Membership

	if err := db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&membership).Error; err != nil {
		return notFound(err)
	}

	return db.Model(&membership).UpdateColumn("role", role).Error
}

// RemoveMember deletes the membership row only. Tasks created by or
// assigned to the removed user are not touched; those rules fire when the
// user itself is deleted, not here.
func RemoveMember(db *gorm.DB, projectID uint, userID uint) error {
	var membership models.Membership

	if err := db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&membership).Error; err != nil {
		return notFound(err)
	}

	return db.Unscoped().Delete(&membership).Error
}

// RoleOf returns the user's role in the project, or ErrNotFound when no
// membership exists. This is the sole input for access-control decisions.
func RoleOf(db *gorm.DB, projectID uint, userID uint) (string, error) {
	var membership models.Membership

	if err := db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&membership).Error; err != nil {
		return "", notFound(err)
	}

	return membership.Role, nil
}

// ListMembers returns the project's memberships ordered by join time
// ascending, with the user rows preloaded.
func ListMembers(db *gorm.DB, projectID uint) ([]models.Membership, error) {
	var memberships []models.Membership

	err := db.Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&memberships).Error

	if err != nil {
		return nil, err
	}

	return memberships, nil
}

// CountAdmins reports how many admins the project has. The registry itself
// never enforces "at least one admin"; callers use this before removals or
// demotions when they want that guarantee.
func CountAdmins(db *gorm.DB, projectID uint) (int64, error) {
	var count int64

	err := db.Model(&models.Membership{}).
		Where("project_id = ? AND role = ?", projectID, "admin").
		Count(&count).Error

	return count, err
}
