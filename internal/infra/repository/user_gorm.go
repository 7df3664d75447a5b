package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

const (
	constraintUserEmail         = "idx_users_email"
	constraintUserStudentNumber = "idx_users_student_number"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) CreateUser(
	ctx context.Context,
	u *models.User,
) error {
	err := r.db.WithContext(ctx).Create(u).Error
	switch {
	case httperr.IsUniqueViolation(err, constraintUserEmail):
		return httperr.Conflict("email_already_registered", "An account with this email already exists.")
	case httperr.IsUniqueViolation(err, constraintUserStudentNumber):
		return httperr.Conflict("student_number_taken", "This student number is already registered.")
	}
	return err
}

func (r *UserGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) GetUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *UserGormRepository) StudentNumberExists(
	ctx context.Context,
	number string,
) (bool, error) {
	return r.exists(ctx, "student_number = ?", number)
}

func (r *UserGormRepository) MarkEmailVerified(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("email_verified", true).Error
}

func (r *UserGormRepository) SetAvatarKey(
	ctx context.Context,
	id uint,
	key string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("avatar_key", key).Error
}

func (r *UserGormRepository) ListByRole(
	ctx context.Context,
	role string,
) ([]models.User, error) {

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("last_name ASC").
		Order("first_name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserGormRepository) exists(ctx context.Context, where string, arg any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where(where, arg).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)
