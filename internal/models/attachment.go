package models

import "gorm.io/gorm"

// Attachment records metadata about a file attached to a task. The bytes
// themselves live on disk under StoredPath; only metadata is kept here.
type Attachment struct {
	gorm.Model

	TaskID     uint   `gorm:"not null;index"`
	StoredPath string `gorm:"not null"`
	FileName   string `gorm:"not null"` // original name as uploaded
	FileType   string `gorm:"not null"` // MIME type from the upload
	FileSize   int64  `gorm:"not null"` // size in bytes
	UploaderID uint   `gorm:"not null;index"`

	// Relationships
	Task     Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Uploader User `gorm:"foreignKey:UploaderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
