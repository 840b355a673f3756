package handlers

import (
	"yammiverse-backend/domain"
	"yammiverse-backend/internal/api/presenters"
	"yammiverse-backend/pkg/favorite"

	"github.com/gofiber/fiber/v2"
)

type (
	FavoriteHandler interface {
		GetFavorites(c *fiber.Ctx) error
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
	}

	favoriteHandler struct {
		favoriteService favorite.FavoriteService
	}
)

func NewFavoriteHandler(favoriteService favorite.FavoriteService) FavoriteHandler {
	return &favoriteHandler{favoriteService: favoriteService}
}

func (h *favoriteHandler) GetFavorites(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := parsePagination(c)

	recipes, count, err := h.favoriteService.GetFavorites(c.Context(), page, limit, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetFavorites, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"favorites": recipes,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetFavorites)
}

func (h *favoriteHandler) AddFavorite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("recipeId")

	if err := h.favoriteService.AddFavorite(c.Context(), recipeID, userID); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedAddFavorite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessAddFavorite)
}

func (h *favoriteHandler) RemoveFavorite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("recipeId")

	if err := h.favoriteService.RemoveFavorite(c.Context(), recipeID, userID); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedRemoveFavorite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveFavorite)
}
