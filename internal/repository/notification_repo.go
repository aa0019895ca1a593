package repository

import (
	"errors"
	"fmt"

	"github.com/snehasingla/Hospital-Management-System/internal/domain"
	"github.com/snehasingla/Hospital-Management-System/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository is the durable per-user notification feed.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *models.Notification) error {
	if err := r.db.Create(n).Error; err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// ListRecent returns the user's newest notifications first, capped at limit
// (DefaultNotificationLimit when limit <= 0). Equal timestamps fall back to
// id order so the feed is stable.
func (r *NotificationRepository) ListRecent(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = domain.DefaultNotificationLimit
	}
	var list []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// MarkRead flips one notification to read. Marking an already-read record is
// a no-op success; the flag never reverts.
func (r *NotificationRepository) MarkRead(id uint) error {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if n.Read {
		return nil
	}
	return r.db.Model(&n).Update("read", true).Error
}

// MarkAllRead flips every unread notification for the user in one statement
// and reports how many changed.
func (r *NotificationRepository) MarkAllRead(userID uint) (int64, error) {
	res := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) CountUnread(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Count(&n).Error
	return n, err
}
