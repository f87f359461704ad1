package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is one entry in a user's personal inbox.
type Notification struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index:idx_notif_user_created" json:"user_id"`
	Kind    string `gorm:"size:20;not null;index" json:"kind"` // SYSTEM, REMINDER, ADMIN
	Title   string `gorm:"size:255" json:"title"`
	Message string `gorm:"type:text" json:"message"`

	// Optional catalog reference the notification points at.
	MediaID    *int64 `json:"media_id,omitempty"`
	MediaType  string `gorm:"size:10" json:"media_type,omitempty"`
	MediaTitle string `gorm:"size:255" json:"media_title,omitempty"`

	ReadAt *time.Time `json:"read_at"`
	// CreatedAt doubles as the scheduled delivery instant for reminders;
	// retention math keys off it.
	CreatedAt time.Time      `gorm:"index:idx_notif_user_created" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Broadcast is an entry in the shared feed every identity reads. Read
// state is tracked client-side, never here.
type Broadcast struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:255" json:"title"`
	Message   string         `gorm:"type:text" json:"message"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Broadcast) TableName() string {
	return "broadcasts"
}
