package models

import "gorm.io/gorm"

// Tag is a reusable label shared across tasks. Names are unique and
// case-sensitive. Tags are never deleted when the last task detaches them.
type Tag struct {
	gorm.Model

	Name string `gorm:"uniqueIndex;not null"`

	// Relationships
	Tasks []Task `gorm:"many2many:task_tags"`
}
