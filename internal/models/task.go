package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model

	ProjectID   uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"not null;default:todo"`   // "todo", "in_progress", "review", "done"
	Priority    string `gorm:"not null;default:medium"` // "low", "medium", "high", "urgent"
	AssigneeID  *uint  `gorm:"index"`
	CreatorID   uint   `gorm:"not null;index"`
	DueDate     *time.Time

	// Relationships
	Project     Project      `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignee    *User        `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Creator     User         `gorm:"foreignKey:CreatorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tags        []Tag        `gorm:"many2many:task_tags"`
	Comments    []Comment    `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Attachments []Attachment `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// IsOverdue reports whether the task has a due date in the past.
func (t *Task) IsOverdue() bool {
	return t.DueDate != nil && time.Now().After(*t.DueDate)
}
