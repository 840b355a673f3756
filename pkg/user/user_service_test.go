package user

import (
	"context"
	"mime/multipart"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"yammiverse-backend/domain"
	"yammiverse-backend/entities"

	jwtv4 "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeUserRepository is an in-memory UserRepository so the whole OTP lifecycle
// can be exercised without a database.
type fakeUserRepository struct {
	users map[string]*entities.User // keyed by email
	otps  []*entities.PasswordOtp
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*entities.User{}}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	if user, ok := f.users[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	for _, user := range f.users {
		if user.ID.String() == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) UpdateUser(_ context.Context, user *entities.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepository) CreateOtp(_ context.Context, otp *entities.PasswordOtp) error {
	f.otps = append(f.otps, otp)
	return nil
}

func (f *fakeUserRepository) GetLatestOtpByEmail(_ context.Context, email string) (*entities.PasswordOtp, error) {
	var matches []*entities.PasswordOtp
	for _, otp := range f.otps {
		if otp.Email == email {
			matches = append(matches, otp)
		}
	}
	if len(matches) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches[0], nil
}

func (f *fakeUserRepository) UpdateOtp(_ context.Context, otp *entities.PasswordOtp) error {
	for i, existing := range f.otps {
		if existing.ID == otp.ID {
			f.otps[i] = otp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) DeleteOtpByID(_ context.Context, id uuid.UUID) error {
	kept := f.otps[:0]
	for _, otp := range f.otps {
		if otp.ID != id {
			kept = append(kept, otp)
		}
	}
	f.otps = kept
	return nil
}

func (f *fakeUserRepository) DeleteOtpsByEmail(_ context.Context, email string) error {
	kept := f.otps[:0]
	for _, otp := range f.otps {
		if otp.Email != email {
			kept = append(kept, otp)
		}
	}
	f.otps = kept
	return nil
}

// stubJWTService issues recognizable tokens without real signing.
type stubJWTService struct{}

func (stubJWTService) GenerateTokenUser(userID string) string { return "user-token-" + userID }

func (stubJWTService) ValidateTokenUser(string) (*jwtv4.Token, error) {
	return nil, nil
}

func (stubJWTService) GetUserIDByToken(token string) (string, error) {
	return strings.TrimPrefix(token, "user-token-"), nil
}

func (stubJWTService) GenerateResetToken(email string, _ time.Duration) (string, error) {
	return "reset-token-" + email, nil
}

func (stubJWTService) GetEmailByResetToken(token string) (string, error) {
	if !strings.HasPrefix(token, "reset-token-") {
		return "", domain.ErrInvalidResetToken
	}
	return strings.TrimPrefix(token, "reset-token-"), nil
}

type stubFileStorage struct{}

func (stubFileStorage) UploadFile(name string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	return folder + "/" + name + ".jpg", nil
}

func (stubFileStorage) GetPublicLinkKey(objectKey string) string {
	return "http://localhost:8080/uploads/" + objectKey
}

// mailRecorder captures outgoing OTP emails so tests can read the plaintext code.
type mailRecorder struct {
	sent []string
}

func (m *mailRecorder) send(_ string, _ string, body string) error {
	m.sent = append(m.sent, body)
	return nil
}

var otpPattern = regexp.MustCompile(`\d{6}`)

func (m *mailRecorder) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, m.sent)
	code := otpPattern.FindString(m.sent[len(m.sent)-1])
	require.Len(t, code, 6)
	return code
}

func newTestService(repo *fakeUserRepository, mails *mailRecorder) UserService {
	return NewUserService(repo, stubJWTService{}, stubFileStorage{}, mails.send)
}

func registerUser(t *testing.T, svc UserService, email string) domain.UserProfile {
	t.Helper()
	profile, err := svc.Register(context.Background(), domain.RegisterRequest{
		FullName: "Ana",
		Email:    email,
		Password: "secret1",
	})
	require.NoError(t, err)
	return profile
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestService(repo, &mailRecorder{})

	profile := registerUser(t, svc, "ana@x.com")
	assert.Equal(t, "Ana", profile.FullName)

	t.Run("stored password is hashed", func(t *testing.T) {
		assert.NotEqual(t, "secret1", repo.users["ana@x.com"].Password)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Register(context.Background(), domain.RegisterRequest{
			FullName: "Ana Again",
			Email:    "ana@x.com",
			Password: "secret1",
		})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("login with correct credentials returns token", func(t *testing.T) {
		res, err := svc.Login(context.Background(), domain.LoginRequest{Email: "ana@x.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "user-token-"+profile.ID, res.Token)
		assert.Equal(t, profile.ID, res.User.ID)
	})

	t.Run("wrong password yields generic error", func(t *testing.T) {
		_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "ana@x.com", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email yields the same generic error", func(t *testing.T) {
		_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "nobody@x.com", Password: "secret1"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email fails", func(t *testing.T) {
		svc := newTestService(newFakeUserRepository(), &mailRecorder{})
		err := svc.ForgotPassword(ctx, domain.ForgotPasswordRequest{Email: "nobody@x.com"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("requesting twice leaves exactly one live OTP", func(t *testing.T) {
		repo := newFakeUserRepository()
		mails := &mailRecorder{}
		svc := newTestService(repo, mails)
		registerUser(t, svc, "ana@x.com")

		require.NoError(t, svc.ForgotPassword(ctx, domain.ForgotPasswordRequest{Email: "ana@x.com"}))
		require.NoError(t, svc.ForgotPassword(ctx, domain.ForgotPasswordRequest{Email: "ana@x.com"}))

		assert.Len(t, repo.otps, 1)
		assert.Len(t, mails.sent, 2)
	})

	t.Run("stored OTP is hashed, not the plaintext code", func(t *testing.T) {
		repo := newFakeUserRepository()
		mails := &mailRecorder{}
		svc := newTestService(repo, mails)
		registerUser(t, svc, "ana@x.com")

		require.NoError(t, svc.ForgotPassword(ctx, domain.ForgotPasswordRequest{Email: "ana@x.com"}))
		code := mails.lastCode(t)
		assert.NotContains(t, repo.otps[0].OtpHash, code)
	})

	t.Run("mail failure surfaces as an error", func(t *testing.T) {
		repo := newFakeUserRepository()
		svc := NewUserService(repo, stubJWTService{}, stubFileStorage{}, func(string, string, string) error {
			return assert.AnError
		})
		registerUser(t, svc, "ana@x.com")

		err := svc.ForgotPassword(ctx, domain.ForgotPasswordRequest{Email: "ana@x.com"})
		assert.ErrorIs(t, err, domain.ErrSendMailFailed)
	})
}

func TestVerifyOtp(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fakeUserRepository, *mailRecorder, UserService) {
		repo := newFakeUserRepository()
		mails := &mailRecorder{}
		svc := newTestService(repo, mails)
		registerUser(t, svc, "ana@x.com")
		require.NoError(t, svc.ForgotPassword(ctx, domain.ForgotPasswordRequest{Email: "ana@x.com"}))
		return repo, mails, svc
	}

	t.Run("no OTP requested", func(t *testing.T) {
		svc := newTestService(newFakeUserRepository(), &mailRecorder{})
		_, err := svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Email: "ana@x.com", Otp: "123456"})
		assert.ErrorIs(t, err, domain.ErrOtpNotFound)
	})

	t.Run("correct code issues reset token and consumes the OTP", func(t *testing.T) {
		repo, mails, svc := setup(t)

		res, err := svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Email: "ana@x.com", Otp: mails.lastCode(t)})
		require.NoError(t, err)
		assert.Equal(t, "reset-token-ana@x.com", res.ResetToken)
		assert.Empty(t, repo.otps)

		// one-time use: the same code cannot be verified again
		_, err = svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Email: "ana@x.com", Otp: mails.lastCode(t)})
		assert.ErrorIs(t, err, domain.ErrOtpNotFound)
	})

	t.Run("wrong code keeps the OTP live and counts the attempt", func(t *testing.T) {
		repo, mails, svc := setup(t)

		wrong := "000000"
		if mails.lastCode(t) == wrong {
			wrong = "000001"
		}

		_, err := svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Email: "ana@x.com", Otp: wrong})
		assert.ErrorIs(t, err, domain.ErrInvalidOtp)
		require.Len(t, repo.otps, 1)
		assert.Equal(t, 1, repo.otps[0].Attempts)

		// the real code still works afterwards
		_, err = svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Email: "ana@x.com", Otp: mails.lastCode(t)})
		assert.NoError(t, err)
	})

	t.Run("OTP is purged after too many failed attempts", func(t *testing.T) {
		repo, mails, svc := setup(t)

		wrong := "000000"
		if mails.lastCode(t) == wrong {
			wrong = "000001"
		}

		var err error
		for i := 0; i < domain.OtpMaxAttempts-1; i++ {
			_, err = svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Email: "ana@x.com", Otp: wrong})
			assert.ErrorIs(t, err, domain.ErrInvalidOtp)
		}

		_, err = svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Email: "ana@x.com", Otp: wrong})
		assert.ErrorIs(t, err, domain.ErrOtpAttemptsExceeded)
		assert.Empty(t, repo.otps)
	})

	t.Run("expired OTP fails and is removed", func(t *testing.T) {
		repo, mails, svc := setup(t)
		repo.otps[0].ExpiresAt = time.Now().Add(-time.Minute)

		_, err := svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Email: "ana@x.com", Otp: mails.lastCode(t)})
		assert.ErrorIs(t, err, domain.ErrOtpExpired)
		assert.Empty(t, repo.otps)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fakeUserRepository, UserService, string) {
		repo := newFakeUserRepository()
		mails := &mailRecorder{}
		svc := newTestService(repo, mails)
		registerUser(t, svc, "ana@x.com")
		require.NoError(t, svc.ForgotPassword(ctx, domain.ForgotPasswordRequest{Email: "ana@x.com"}))
		res, err := svc.VerifyOtp(ctx, domain.VerifyOtpRequest{Email: "ana@x.com", Otp: mails.lastCode(t)})
		require.NoError(t, err)
		return repo, svc, res.ResetToken
	}

	t.Run("token email must match the request email", func(t *testing.T) {
		_, svc, token := setup(t)
		err := svc.ResetPassword(ctx, domain.ResetPasswordRequest{
			Email:       "other@x.com",
			ResetToken:  token,
			NewPassword: "newsecret",
		})
		assert.ErrorIs(t, err, domain.ErrTokenEmailMismatch)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, svc, _ := setup(t)
		err := svc.ResetPassword(ctx, domain.ResetPasswordRequest{
			Email:       "ana@x.com",
			ResetToken:  "not-a-token",
			NewPassword: "newsecret",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
	})

	t.Run("old password stops working, new one logs in", func(t *testing.T) {
		repo, svc, token := setup(t)

		err := svc.ResetPassword(ctx, domain.ResetPasswordRequest{
			Email:       "ana@x.com",
			ResetToken:  token,
			NewPassword: "newsecret",
		})
		require.NoError(t, err)
		assert.Empty(t, repo.otps)

		_, err = svc.Login(ctx, domain.LoginRequest{Email: "ana@x.com", Password: "secret1"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

		_, err = svc.Login(ctx, domain.LoginRequest{Email: "ana@x.com", Password: "newsecret"})
		assert.NoError(t, err)
	})
}
