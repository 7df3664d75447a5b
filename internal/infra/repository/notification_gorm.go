package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/notification"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) Create(
	ctx context.Context,
	n *models.Notification,
) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
	unreadOnly bool,
) ([]models.Notification, error) {

	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}

	var items []models.Notification
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(200).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *NotificationGormRepository) MarkRead(
	ctx context.Context,
	userID uint,
	id uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *NotificationGormRepository) MarkAllRead(
	ctx context.Context,
	userID uint,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

// Compile-time check
var _ domain.Repository = (*NotificationGormRepository)(nil)
