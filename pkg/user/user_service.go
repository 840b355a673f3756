package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"mime/multipart"
	"time"

	"yammiverse-backend/domain"
	"yammiverse-backend/entities"
	"yammiverse-backend/internal/utils/storage"
	"yammiverse-backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	// MailSender dispatches a transactional email. Wired to mailing.SendMail
	// in the app config; swapped for a stub in tests.
	MailSender func(toEmail string, subject string, body string) error

	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserProfile, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserProfile, error)
		UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (domain.UserProfile, error)
		UpdateSettings(ctx context.Context, req domain.UpdateSettingsRequest, userID string) (domain.UserProfile, error)
		UploadAvatar(ctx context.Context, file *multipart.FileHeader, userID string) (string, error)
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		VerifyOtp(ctx context.Context, req domain.VerifyOtpRequest) (domain.VerifyOtpResponse, error)
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		fileStorage    storage.FileStorage
		sendMail       MailSender
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, fileStorage storage.FileStorage, sendMail MailSender) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		fileStorage:    fileStorage,
		sendMail:       sendMail,
	}
}

func toUserProfile(user *entities.User) domain.UserProfile {
	return domain.UserProfile{
		ID:                 user.ID.String(),
		FullName:           user.FullName,
		Email:              user.Email,
		Avatar:             user.Avatar,
		EmailNotifications: user.EmailNotifications,
		PublicProfile:      user.PublicProfile,
		CreatedAt:          user.CreatedAt,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserProfile, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.UserProfile{}, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserProfile{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserProfile{}, err
	}

	user := &entities.User{
		ID:                 uuid.New(),
		FullName:           req.FullName,
		Email:              req.Email,
		Password:           string(hashed),
		EmailNotifications: true,
		PublicProfile:      true,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.UserProfile{}, err
	}

	return toUserProfile(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)

	// Dummy hash keeps the bcrypt comparison in place for unknown emails so
	// response timing does not reveal whether the account exists.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password))
	if err != nil || compareErr != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String())

	return domain.LoginResponse{
		Token: token,
		User:  toUserProfile(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserProfile, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserProfile{}, domain.ErrUserNotFound
		}
		return domain.UserProfile{}, err
	}
	return toUserProfile(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (domain.UserProfile, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserProfile{}, domain.ErrUserNotFound
		}
		return domain.UserProfile{}, err
	}

	user.FullName = req.FullName
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserProfile{}, err
	}

	return toUserProfile(user), nil
}

func (s *userService) UpdateSettings(ctx context.Context, req domain.UpdateSettingsRequest, userID string) (domain.UserProfile, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserProfile{}, domain.ErrUserNotFound
		}
		return domain.UserProfile{}, err
	}

	user.EmailNotifications = *req.EmailNotifications
	user.PublicProfile = *req.PublicProfile
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserProfile{}, err
	}

	return toUserProfile(user), nil
}

func (s *userService) UploadAvatar(ctx context.Context, file *multipart.FileHeader, userID string) (string, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}

	objectKey, err := s.fileStorage.UploadFile(
		fmt.Sprintf("avatar-%s", user.ID.String()),
		file,
		"avatars",
		storage.AllowImage...,
	)
	if err != nil {
		return "", err
	}

	user.Avatar = s.fileStorage.GetPublicLinkKey(objectKey)
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return "", err
	}

	return user.Avatar, nil
}

// generateOtpCode draws a uniformly random 6-digit code from crypto/rand.
func generateOtpCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// ForgotPassword starts the reset flow: generate a code, store only its hash,
// and mail the plaintext to the account holder. Older OTP rows for the email
// are purged first so at most one live code exists at a time.
func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	code, err := generateOtpCode()
	if err != nil {
		return err
	}

	otpHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepository.DeleteOtpsByEmail(ctx, req.Email); err != nil {
		return err
	}

	otp := &entities.PasswordOtp{
		ID:        uuid.New(),
		Email:     req.Email,
		OtpHash:   string(otpHash),
		ExpiresAt: time.Now().Add(domain.OtpTTL),
		CreatedAt: time.Now(),
	}
	if err := s.userRepository.CreateOtp(ctx, otp); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"<p>Your YammiVerse password reset code is:</p><h2>%s</h2><p>The code expires in 10 minutes.</p>",
		code,
	)
	if err := s.sendMail(req.Email, "YammiVerse Password Reset", body); err != nil {
		return domain.ErrSendMailFailed
	}

	return nil
}

// VerifyOtp checks the submitted code against the newest stored hash. A match
// consumes the row and issues the short-lived reset token; a mismatch burns an
// attempt and the row is purged after OtpMaxAttempts failures.
func (s *userService) VerifyOtp(ctx context.Context, req domain.VerifyOtpRequest) (domain.VerifyOtpResponse, error) {
	otp, err := s.userRepository.GetLatestOtpByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.VerifyOtpResponse{}, domain.ErrOtpNotFound
		}
		return domain.VerifyOtpResponse{}, err
	}

	if time.Now().After(otp.ExpiresAt) {
		if err := s.userRepository.DeleteOtpByID(ctx, otp.ID); err != nil {
			return domain.VerifyOtpResponse{}, err
		}
		return domain.VerifyOtpResponse{}, domain.ErrOtpExpired
	}

	// bcrypt comparison is constant-time over the hash
	if err := bcrypt.CompareHashAndPassword([]byte(otp.OtpHash), []byte(req.Otp)); err != nil {
		otp.Attempts++
		if otp.Attempts >= domain.OtpMaxAttempts {
			if err := s.userRepository.DeleteOtpByID(ctx, otp.ID); err != nil {
				return domain.VerifyOtpResponse{}, err
			}
			return domain.VerifyOtpResponse{}, domain.ErrOtpAttemptsExceeded
		}
		if err := s.userRepository.UpdateOtp(ctx, otp); err != nil {
			return domain.VerifyOtpResponse{}, err
		}
		return domain.VerifyOtpResponse{}, domain.ErrInvalidOtp
	}

	resetToken, err := s.jwtService.GenerateResetToken(req.Email, domain.ResetTokenTTL)
	if err != nil {
		return domain.VerifyOtpResponse{}, err
	}

	// one-time use
	if err := s.userRepository.DeleteOtpByID(ctx, otp.ID); err != nil {
		return domain.VerifyOtpResponse{}, err
	}

	return domain.VerifyOtpResponse{ResetToken: resetToken}, nil
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	email, err := s.jwtService.GetEmailByResetToken(req.ResetToken)
	if err != nil {
		return err
	}

	if email != req.Email {
		return domain.ErrTokenEmailMismatch
	}

	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return err
	}

	// defensive cleanup of any OTP rows that survived the happy path
	return s.userRepository.DeleteOtpsByEmail(ctx, req.Email)
}
