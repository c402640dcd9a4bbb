package models

import "gorm.io/gorm"

// Membership binds one user to one project with a role. The join timestamp
// is the record's CreatedAt; updating the role never touches it.
type Membership struct {
	gorm.Model

	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_project"`
	ProjectID uint   `gorm:"not null;uniqueIndex:idx_user_project"`
	Role      string `gorm:"not null"` // "admin", "manager" or "member"

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
