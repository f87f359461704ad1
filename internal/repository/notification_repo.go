package repository

import (
	"time"

	"cinebox/internal/domain"
	"cinebox/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

// ListPersonal returns the user's inbox newest first, capped to the
// server-side fetch limit. Callers that want the steady-state view run
// Cleanup first.
func (r *NotificationRepository) ListPersonal(userID uint) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(domain.InboxFetchCap).Find(&list).Error
	return list, err
}

func (r *NotificationRepository) MarkRead(id, userID uint, now time.Time) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", id, userID).
		Update("read_at", now)
	return res.Error
}

// Cleanup enforces inbox retention: entries older than the age cutoff go
// first, then the oldest entries beyond the keep count. Both passes are
// computed against the current listing, so running it again with no new
// arrivals changes nothing.
func (r *NotificationRepository) Cleanup(userID uint, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		cutoff := now.Add(-domain.InboxMaxAge)
		if err := tx.Where("user_id = ? AND created_at < ?", userID, cutoff).
			Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		var ids []uint
		if err := tx.Model(&models.Notification{}).Where("user_id = ?", userID).
			Order("created_at DESC").Limit(domain.InboxFetchCap).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) <= domain.InboxKeepCount {
			return nil
		}
		return tx.Where("id IN ?", ids[domain.InboxKeepCount:]).
			Delete(&models.Notification{}).Error
	})
}

// DeletePersonal removes one inbox entry (admin console action). The
// delete is scoped to the owning user, so a request aimed at the wrong
// inbox cannot take out another identity's entry.
func (r *NotificationRepository) DeletePersonal(userID, id uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) CreateBroadcast(b *models.Broadcast) error {
	return r.db.Create(b).Error
}

// ListBroadcasts returns the shared feed newest first, capped at read
// time; old entries are never deleted on behalf of clients.
func (r *NotificationRepository) ListBroadcasts() ([]models.Broadcast, error) {
	var list []models.Broadcast
	err := r.db.Order("created_at DESC").Limit(domain.BroadcastCap).Find(&list).Error
	return list, err
}

func (r *NotificationRepository) DeleteBroadcast(id uint) error {
	res := r.db.Delete(&models.Broadcast{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
