package repository

import (
	"time"

	"cinebox/internal/domain"
	"cinebox/internal/models"

	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalUsers           int64   `json:"total_users"`
	OnlineUsers          int64   `json:"online_users"`
	BannedUsers          int64   `json:"banned_users"`
	CreditsIssued        float64 `json:"credits_issued"`
	LifetimeWatchedHours float64 `json:"lifetime_watched_hours"`
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetDashboardStats(now time.Time) (*DashboardStats, error) {
	var s DashboardStats
	viewers := r.db.Model(&models.User{}).Where("role = ?", domain.RoleViewer)
	if err := viewers.Count(&s.TotalUsers).Error; err != nil {
		return nil, err
	}
	onlineSince := now.Add(-domain.OnlineWindow)
	r.db.Model(&models.User{}).
		Where("role = ? AND last_active > ?", domain.RoleViewer, onlineSince).
		Count(&s.OnlineUsers)
	r.db.Model(&models.User{}).
		Where("role = ? AND is_banned = ?", domain.RoleViewer, true).
		Count(&s.BannedUsers)

	var sums struct {
		Balance float64
		Seconds int64
	}
	r.db.Model(&models.User{}).
		Select("COALESCE(SUM(balance),0) AS balance, COALESCE(SUM(lifetime_watched_seconds),0) AS seconds").
		Where("role = ?", domain.RoleViewer).
		Scan(&sums)
	s.CreditsIssued = sums.Balance
	s.LifetimeWatchedHours = float64(sums.Seconds) / 3600.0
	return &s, nil
}

// ListUsers is the moderation view's listing: search matches display
// name, handle or platform id.
func (r *AdminRepository) ListUsers(search string, page, limit int) ([]models.User, int64, error) {
	q := r.db.Model(&models.User{}).Where("role = ?", domain.RoleViewer)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("display_name LIKE ? OR handle LIKE ? OR CAST(platform_id AS CHAR) LIKE ?", like, like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.User
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
