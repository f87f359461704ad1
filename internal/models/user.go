package models

import (
	"time"

	"cinebox/internal/domain"

	"gorm.io/gorm"
)

// User is the per-identity ledger row: profile mirror from the chat
// platform plus reward balance, watch-time counters, presence and the
// moderation flag. The numeric platform ID is the stable key; the row
// ID is internal.
type User struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	PlatformID  int64  `gorm:"uniqueIndex;not null" json:"platform_id"`
	DisplayName string `gorm:"size:128" json:"display_name"`
	Handle      string `gorm:"size:64;index" json:"handle"`
	AvatarURL   string `gorm:"size:512" json:"avatar_url"`
	Locale      string `gorm:"size:8" json:"locale"`
	Role        string `gorm:"size:20;not null;default:'VIEWER';index" json:"role"`

	// PasswordHash is set only for the seeded admin account.
	PasswordHash string `gorm:"size:255" json:"-"`

	Balance                float64 `gorm:"not null;default:0" json:"balance"`
	LifetimeWatchedSeconds int64   `gorm:"not null;default:0" json:"lifetime_watched_seconds"`
	// DailyDay is the UTC calendar date the daily counter belongs to
	// ("2006-01-02"). Rolled over lazily on the first flush of a new day.
	DailyDay            string `gorm:"size:10;not null;default:''" json:"daily_day"`
	DailyWatchedSeconds int64  `gorm:"not null;default:0" json:"daily_watched_seconds"`

	LastActive *time.Time `gorm:"index" json:"last_active"`
	IsBanned   bool       `gorm:"not null;default:false;index" json:"is_banned"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }

// OnlineAt reports whether the last heartbeat is within the online window.
func (u *User) OnlineAt(now time.Time) bool {
	return u.LastActive != nil && now.Sub(*u.LastActive) < domain.OnlineWindow
}
