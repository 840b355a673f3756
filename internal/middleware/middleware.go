package middleware

import (
	"errors"
	"strings"

	"yammiverse-backend/domain"
	"yammiverse-backend/internal/api/presenters"
	"yammiverse-backend/internal/utils"
	"yammiverse-backend/pkg/jwt"
	"yammiverse-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

type (
	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		CORSMiddleware() fiber.Handler
	}

	middleware struct {
		userRepository user.UserRepository
	}
)

func NewMiddleware(userRepository user.UserRepository) Middleware {
	return &middleware{userRepository: userRepository}
}

// AuthMiddleware verifies the bearer token and resolves the encoded user id to
// a live user record before the handler runs. The resolved id is stored in
// c.Locals("user_id").
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		userID, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		if _, err := m.userRepository.GetUserByID(c.Context(), userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedProcessRequest, domain.ErrUserNotFound)
			}
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	origins := utils.GetConfig("CORS_ORIGINS")
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	})
}
