package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"yammiverse-backend/entities"
	"yammiverse-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockUserRepository struct {
	GetUserByIDFunc func(ctx context.Context, id string) (*entities.User, error)
}

func (m *mockUserRepository) CreateUser(context.Context, *entities.User) error { return nil }

func (m *mockUserRepository) GetUserByEmail(context.Context, string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) UpdateUser(context.Context, *entities.User) error { return nil }

func (m *mockUserRepository) CreateOtp(context.Context, *entities.PasswordOtp) error { return nil }

func (m *mockUserRepository) GetLatestOtpByEmail(context.Context, string) (*entities.PasswordOtp, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) UpdateOtp(context.Context, *entities.PasswordOtp) error { return nil }
func (m *mockUserRepository) DeleteOtpByID(context.Context, uuid.UUID) error         { return nil }
func (m *mockUserRepository) DeleteOtpsByEmail(context.Context, string) error        { return nil }

func newTestApp(repo *mockUserRepository, jwtService jwt.JWTService) *fiber.App {
	app := fiber.New()
	m := NewMiddleware(repo)
	app.Get("/protected", m.AuthMiddleware(jwtService), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id")})
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewJWTService()
	userID := uuid.New()

	liveUserRepo := &mockUserRepository{
		GetUserByIDFunc: func(_ context.Context, id string) (*entities.User, error) {
			if id == userID.String() {
				return &entities.User{ID: userID, Email: "ana@x.com"}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}

	tests := []struct {
		name           string
		repo           *mockUserRepository
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "missing header",
			repo:           liveUserRepo,
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "header without token",
			repo:           liveUserRepo,
			authHeader:     "Bearer ",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed token",
			repo:           liveUserRepo,
			authHeader:     "Bearer garbage",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "token without bearer scheme",
			repo:           liveUserRepo,
			authHeader:     jwtService.GenerateTokenUser(userID.String()),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			repo:           liveUserRepo,
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "valid token and live user",
			repo:           liveUserRepo,
			authHeader:     "Bearer " + jwtService.GenerateTokenUser(userID.String()),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid token but user no longer exists",
			repo:           &mockUserRepository{},
			authHeader:     "Bearer " + jwtService.GenerateTokenUser(userID.String()),
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tt.repo, jwtService)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			res, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, res.StatusCode)
		})
	}
}
