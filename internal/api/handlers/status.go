package handlers

import (
	"errors"

	"yammiverse-backend/domain"

	"github.com/gofiber/fiber/v2"
)

// errStatus maps domain sentinel errors onto HTTP status codes so every
// handler reports the same taxonomy: not-found, forbidden, conflict,
// validation, upstream.
func errStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrOtpNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedRecipeAccess):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrDuplicateFavorite),
		errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrResetTokenExpired),
		errors.Is(err, domain.ErrInvalidResetToken),
		errors.Is(err, domain.ErrTokenEmailMismatch):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrOtpExpired),
		errors.Is(err, domain.ErrInvalidOtp),
		errors.Is(err, domain.ErrOtpAttemptsExceeded),
		errors.Is(err, domain.ErrInvalidIngredients),
		errors.Is(err, domain.ErrInvalidInstructions),
		errors.Is(err, domain.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrImageTooLarge),
		errors.Is(err, domain.ErrUnsupportedImageType),
		errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrSendMailFailed):
		return fiber.StatusInternalServerError
	}
	return fiber.StatusBadRequest
}
