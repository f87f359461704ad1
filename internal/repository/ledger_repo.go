package repository

import (
	"errors"
	"time"

	"cinebox/internal/domain"
	"cinebox/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// Profile is the identity snapshot the chat-platform shell hands us on
// session bootstrap.
type Profile struct {
	DisplayName string
	Handle      string
	AvatarURL   string
	Locale      string
}

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *LedgerRepository) GetByPlatformID(platformID int64) (*models.User, error) {
	var u models.User
	if err := r.db.Where("platform_id = ?", platformID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetAdminByHandle looks up the seeded console account by its handle
// (the configured admin email).
func (r *LedgerRepository) GetAdminByHandle(handle string) (*models.User, error) {
	var u models.User
	err := r.db.Where("handle = ? AND role = ?", handle, domain.RoleAdmin).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateOrRefresh is the idempotent ledger bootstrap: a new identity gets
// a zeroed ledger, an existing one only has its profile mirror refreshed
// and last_active touched. Balance and counters are never re-initialized.
func (r *LedgerRepository) CreateOrRefresh(platformID int64, p Profile, now time.Time) (*models.User, error) {
	var u models.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("platform_id = ?", platformID).First(&u).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			u = models.User{
				PlatformID:  platformID,
				DisplayName: p.DisplayName,
				Handle:      p.Handle,
				AvatarURL:   p.AvatarURL,
				Locale:      p.Locale,
				Role:        domain.RoleViewer,
				LastActive:  &now,
			}
			// Two first bootstraps can race past the read above; the
			// loser hits the unique platform_id index, swallows the
			// conflict and falls through to the refresh path.
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "platform_id"}},
				DoNothing: true,
			}).Create(&u)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				return nil
			}
			if err := tx.Where("platform_id = ?", platformID).First(&u).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		return tx.Model(&u).Updates(map[string]interface{}{
			"display_name": p.DisplayName,
			"handle":       p.Handle,
			"avatar_url":   p.AvatarURL,
			"locale":       p.Locale,
			"last_active":  now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ApplyWatch credits elapsed watch seconds to the ledger. The numeric
// counters go through SQL-side adds so concurrent flushes commute; the
// daily rollover decision reads daily_day first and therefore runs under
// a row lock. sqlite has a single writer, so the lock clause is only
// emitted for mysql.
func (r *LedgerRepository) ApplyWatch(userID uint, seconds int64, today string, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Select("id", "daily_day")
		if tx.Dialector.Name() == "mysql" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var u models.User
		if err := q.First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		updates := map[string]interface{}{
			"balance":                  gorm.Expr("balance + ?", float64(seconds)*domain.CreditPerSecond),
			"lifetime_watched_seconds": gorm.Expr("lifetime_watched_seconds + ?", seconds),
			"last_active":              now,
		}
		if u.DailyDay == today {
			updates["daily_watched_seconds"] = gorm.Expr("daily_watched_seconds + ?", seconds)
		} else {
			// First flush of a new day: the counter restarts at this
			// increment, nothing carries over.
			updates["daily_day"] = today
			updates["daily_watched_seconds"] = seconds
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
	})
}

// Touch refreshes last_active (heartbeat path).
func (r *LedgerRepository) Touch(userID uint, now time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_active", now).Error
}

// SetBanned flips the moderation flag to an absolute value, so retried
// bulk syncs stay safe. A repeated identical flip is a clean no-op, which
// is why RowsAffected is not consulted here (mysql reports 0 for
// value-unchanged updates).
func (r *LedgerRepository) SetBanned(userID uint, banned bool) error {
	if _, err := r.GetByID(userID); err != nil {
		return err
	}
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("is_banned", banned).Error
}

// AdjustBalance is the admin-only balance mutation, applied as an
// SQL-side add like the reward path.
func (r *LedgerRepository) AdjustBalance(userID uint, delta float64) error {
	if _, err := r.GetByID(userID); err != nil {
		return err
	}
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", delta)).Error
}
