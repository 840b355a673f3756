package handlers

import (
	"mime/multipart"
	"strconv"

	"yammiverse-backend/domain"
	"yammiverse-backend/internal/api/presenters"
	"yammiverse-backend/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

const maxPageLimit = 100

func parsePagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	query := domain.RecipeListQuery{
		Search:     c.Query("search", ""),
		Category:   c.Query("category", ""),
		Difficulty: c.Query("difficulty", ""),
		Sort:       c.Query("sort", "newest"),
		Page:       page,
		Limit:      limit,
	}

	recipes, count, err := h.recipeService.GetRecipes(c.Context(), query)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recipes": recipes,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	recipeID := c.Params("id")
	if recipeID == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, domain.ErrRecipeNotFound)
	}

	res, err := h.recipeService.GetRecipeDetail(c.Context(), recipeID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

// parseSaveRequest reads the multipart text fields of a recipe create/update.
// The cover image is optional; nested fields stay JSON-encoded strings here
// and are parsed strictly by the service.
func (h *recipeHandler) parseSaveRequest(c *fiber.Ctx) (domain.SaveRecipeRequest, *multipart.FileHeader, error) {
	cookingTime, _ := strconv.Atoi(c.FormValue("cooking_time", "0"))
	servings, _ := strconv.Atoi(c.FormValue("servings", "0"))

	req := domain.SaveRecipeRequest{
		Title:           c.FormValue("title"),
		Description:     c.FormValue("description"),
		Category:        c.FormValue("category"),
		DifficultyLevel: c.FormValue("difficulty"),
		CookingTime:     cookingTime,
		Servings:        servings,
		Ingredients:     c.FormValue("ingredients"),
		Instructions:    c.FormValue("instructions"),
	}

	if err := h.validator.Struct(req); err != nil {
		return domain.SaveRecipeRequest{}, nil, err
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}
	return req, image, nil
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req, image, err := h.parseSaveRequest(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), req, image, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	req, image, err := h.parseSaveRequest(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), recipeID, req, image, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if err := h.recipeService.DeleteRecipe(c.Context(), recipeID, userID); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}
