package account

import (
	"context"

	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

type Repository interface {
	CreateUser(
		ctx context.Context,
		u *models.User,
	) error

	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetUserByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	EmailExists(
		ctx context.Context,
		email string,
	) (bool, error)

	StudentNumberExists(
		ctx context.Context,
		number string,
	) (bool, error)

	MarkEmailVerified(
		ctx context.Context,
		id uint,
	) error

	SetAvatarKey(
		ctx context.Context,
		id uint,
		key string,
	) error

	ListByRole(
		ctx context.Context,
		role string,
	) ([]models.User, error)
}
