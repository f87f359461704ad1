package models

import "time"

// SavedItem is one entry in a user's saved list (watchlist). Membership
// is keyed by (user, media id, media type); display order is insertion
// order, newest first.
type SavedItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_saved_user_media,unique" json:"user_id"`
	MediaID    int64     `gorm:"not null;index:idx_saved_user_media,unique" json:"media_id"`
	MediaType  string    `gorm:"size:10;not null;index:idx_saved_user_media,unique" json:"media_type"`
	Title      string    `gorm:"size:255" json:"title"`
	PosterPath string    `gorm:"size:512" json:"poster_path"`
	CreatedAt  time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (SavedItem) TableName() string {
	return "saved_items"
}

// HistoryEntry is one entry in a user's watch history, capped to the 20
// most recent. Re-watching moves the entry to the front instead of
// duplicating it; TouchedAt carries the ordering.
type HistoryEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_hist_user_media,unique;index:idx_hist_user_touched" json:"user_id"`
	MediaID    int64     `gorm:"not null;index:idx_hist_user_media,unique" json:"media_id"`
	MediaType  string    `gorm:"size:10;not null;index:idx_hist_user_media,unique" json:"media_type"`
	Title      string    `gorm:"size:255" json:"title"`
	PosterPath string    `gorm:"size:512" json:"poster_path"`
	TouchedAt  time.Time `gorm:"not null;index:idx_hist_user_touched" json:"touched_at"`
	CreatedAt  time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (HistoryEntry) TableName() string {
	return "history_entries"
}
