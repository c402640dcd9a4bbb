package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Profile is the 1:1 extension of a User. A row is created alongside the
// user at registration and removed with it.
type Profile struct {
	gorm.Model

	UserID                  uint `gorm:"not null;uniqueIndex"`
	Bio                     string
	JobTitle                string
	AvatarPath              string
	NotificationPreferences datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
