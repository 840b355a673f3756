package user

import (
	"context"

	"yammiverse-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		UpdateUser(ctx context.Context, user *entities.User) error

		CreateOtp(ctx context.Context, otp *entities.PasswordOtp) error
		GetLatestOtpByEmail(ctx context.Context, email string) (*entities.PasswordOtp, error)
		UpdateOtp(ctx context.Context, otp *entities.PasswordOtp) error
		DeleteOtpByID(ctx context.Context, id uuid.UUID) error
		DeleteOtpsByEmail(ctx context.Context, email string) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) CreateOtp(ctx context.Context, otp *entities.PasswordOtp) error {
	return r.db.WithContext(ctx).Create(otp).Error
}

// GetLatestOtpByEmail returns the newest OTP row for the email. Ordering by
// created_at desc guards against a stale row winning when two requests were
// issued close together.
func (r *userRepository) GetLatestOtpByEmail(ctx context.Context, email string) (*entities.PasswordOtp, error) {
	var otp entities.PasswordOtp
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at desc").
		First(&otp).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *userRepository) UpdateOtp(ctx context.Context, otp *entities.PasswordOtp) error {
	return r.db.WithContext(ctx).Save(otp).Error
}

func (r *userRepository) DeleteOtpByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.PasswordOtp{}).Error
}

func (r *userRepository) DeleteOtpsByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&entities.PasswordOtp{}).Error
}
