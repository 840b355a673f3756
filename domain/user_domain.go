package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login success"
	MessageSuccessGetProfile     = "success get profile"
	MessageSuccessUpdateProfile  = "profile updated successfully"
	MessageSuccessUpdateSettings = "settings updated successfully"
	MessageSuccessUploadAvatar   = "avatar uploaded successfully"
	MessageSuccessOtpSent        = "an OTP has been sent to your email"
	MessageSuccessOtpVerified    = "OTP verified successfully"
	MessageSuccessResetPassword  = "password has been reset, please log in again"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetProfile     = "failed to get profile"
	MessageFailedUpdateProfile  = "failed to update profile"
	MessageFailedUpdateSettings = "failed to update settings"
	MessageFailedUploadAvatar   = "failed to upload avatar"
	MessageFailedOtpRequest     = "failed to request OTP"
	MessageFailedOtpVerify      = "failed to verify OTP"
	MessageFailedResetPassword  = "failed to reset password"

	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrOtpNotFound         = errors.New("no OTP requested for this email")
	ErrOtpExpired          = errors.New("OTP has expired, please request a new one")
	ErrInvalidOtp          = errors.New("invalid OTP")
	ErrOtpAttemptsExceeded = errors.New("too many failed attempts, please request a new OTP")
	ErrResetTokenExpired   = errors.New("reset token has expired")
	ErrInvalidResetToken   = errors.New("invalid reset token")
	ErrTokenEmailMismatch  = errors.New("reset token does not belong to this email")
	ErrSendMailFailed      = errors.New("failed to send OTP email")
)

const (
	OtpTTL         = 10 * time.Minute
	OtpMaxAttempts = 5
	ResetTokenTTL  = 10 * time.Minute
)

type (
	RegisterRequest struct {
		FullName string `json:"full_name" validate:"required,min=2,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string      `json:"token"`
		User  UserProfile `json:"user"`
	}

	UserProfile struct {
		ID                 string    `json:"id"`
		FullName           string    `json:"full_name"`
		Email              string    `json:"email"`
		Avatar             string    `json:"avatar,omitempty"`
		EmailNotifications bool      `json:"email_notifications"`
		PublicProfile      bool      `json:"public_profile"`
		CreatedAt          time.Time `json:"created_at"`
	}

	UpdateProfileRequest struct {
		FullName string `json:"full_name" validate:"required,min=2,max=100"`
	}

	UpdateSettingsRequest struct {
		EmailNotifications *bool `json:"email_notifications" validate:"required"`
		PublicProfile      *bool `json:"public_profile" validate:"required"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	VerifyOtpRequest struct {
		Email string `json:"email" validate:"required,email"`
		Otp   string `json:"otp" validate:"required,len=6,numeric"`
	}

	VerifyOtpResponse struct {
		ResetToken string `json:"reset_token"`
	}

	ResetPasswordRequest struct {
		Email       string `json:"email" validate:"required,email"`
		ResetToken  string `json:"reset_token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=6"`
	}
)
