package repository

import (
	"errors"
	"time"

	"cinebox/internal/domain"
	"cinebox/internal/models"

	"gorm.io/gorm"
)

// MediaRef identifies one catalog item from the content-lookup
// collaborator, plus the display fields the lists need.
type MediaRef struct {
	MediaID    int64  `json:"media_id" binding:"required"`
	MediaType  string `json:"media_type" binding:"required,oneof=movie tv"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path"`
}

// LibraryRepository owns the saved list and the watch history.
type LibraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

// ToggleSaved converges on the opposite of the store's actual current
// state. The caller's belief about "currently saved" is ignored: the
// row is re-read inside the transaction so concurrent toggles from two
// devices cannot flap.
func (r *LibraryRepository) ToggleSaved(userID uint, ref MediaRef) (saved bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.SavedItem
		findErr := tx.Where("user_id = ? AND media_id = ? AND media_type = ?",
			userID, ref.MediaID, ref.MediaType).First(&existing).Error
		if findErr == nil {
			saved = false
			return tx.Delete(&existing).Error
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}
		saved = true
		return tx.Create(&models.SavedItem{
			UserID:     userID,
			MediaID:    ref.MediaID,
			MediaType:  ref.MediaType,
			Title:      ref.Title,
			PosterPath: ref.PosterPath,
		}).Error
	})
	return saved, err
}

func (r *LibraryRepository) ListSaved(userID uint) ([]models.SavedItem, error) {
	var list []models.SavedItem
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *LibraryRepository) IsSaved(userID uint, mediaID int64, mediaType string) (bool, error) {
	var c int64
	err := r.db.Model(&models.SavedItem{}).
		Where("user_id = ? AND media_id = ? AND media_type = ?", userID, mediaID, mediaType).
		Count(&c).Error
	return c > 0, err
}

// TouchHistory records a watch. A repeat of an item already in history
// moves it to the front; the list is then trimmed to the cap, oldest
// out first.
func (r *LibraryRepository) TouchHistory(userID uint, ref MediaRef, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.HistoryEntry
		findErr := tx.Where("user_id = ? AND media_id = ? AND media_type = ?",
			userID, ref.MediaID, ref.MediaType).First(&existing).Error
		if findErr == nil {
			return tx.Model(&existing).Updates(map[string]interface{}{
				"touched_at":  now,
				"title":       ref.Title,
				"poster_path": ref.PosterPath,
			}).Error
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}
		if err := tx.Create(&models.HistoryEntry{
			UserID:     userID,
			MediaID:    ref.MediaID,
			MediaType:  ref.MediaType,
			Title:      ref.Title,
			PosterPath: ref.PosterPath,
			TouchedAt:  now,
		}).Error; err != nil {
			return err
		}
		var ids []uint
		if err := tx.Model(&models.HistoryEntry{}).Where("user_id = ?", userID).
			Order("touched_at DESC").Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) <= domain.HistoryCap {
			return nil
		}
		return tx.Where("id IN ?", ids[domain.HistoryCap:]).
			Delete(&models.HistoryEntry{}).Error
	})
}

func (r *LibraryRepository) ListHistory(userID uint) ([]models.HistoryEntry, error) {
	var list []models.HistoryEntry
	err := r.db.Where("user_id = ?", userID).Order("touched_at DESC").Find(&list).Error
	return list, err
}
