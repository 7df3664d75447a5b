package notification

import (
	"context"

	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

type Repository interface {
	Create(
		ctx context.Context,
		n *models.Notification,
	) error

	ListForUser(
		ctx context.Context,
		userID uint,
		unreadOnly bool,
	) ([]models.Notification, error)

	// MarkRead reports false when no notification with id belongs to userID.
	MarkRead(
		ctx context.Context,
		userID uint,
		id uint,
	) (bool, error)

	MarkAllRead(
		ctx context.Context,
		userID uint,
	) (int64, error)
}
