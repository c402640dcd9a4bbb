package models

import "gorm.io/gorm"

// Notification is an append-only per-user message with a read flag.
// Rows are written synchronously during request handling; there is no
// delivery pipeline behind them.
type Notification struct {
	gorm.Model

	UserID  uint   `gorm:"not null;index"`
	Content string `gorm:"not null"`
	Link    string
	Read    bool `gorm:"not null;default:false"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
