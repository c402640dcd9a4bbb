package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"not null;default:active"` // "active" or "archived"

	// Relationships
	Memberships []Membership `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tasks       []Task       `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
