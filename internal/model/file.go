package model

import "time"

// File represents metadata for a single uploaded file. The stored name is
// fixed at upload time and never changes; only the display name is mutable.
type File struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	DisplayName string    `json:"display_name" gorm:"size:255;not null"`
	StoredName  string    `json:"-" gorm:"size:255;not null;index"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Size        string    `json:"size" gorm:"size:32;not null"`
	UploadedAt  time.Time `json:"uploaded_at" gorm:"index"`
	Preview     *string   `json:"preview,omitempty" gorm:"size:512"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
