package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"yammiverse-backend/domain"
	"yammiverse-backend/entities"
	"yammiverse-backend/internal/utils/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, query domain.RecipeListQuery) ([]domain.Recipe, int64, error)
		GetRecipeDetail(ctx context.Context, recipeID string) (domain.RecipeDetail, error)
		CreateRecipe(ctx context.Context, req domain.SaveRecipeRequest, image *multipart.FileHeader, userID string) (domain.RecipeDetail, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.SaveRecipeRequest, image *multipart.FileHeader, userID string) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		fileStorage      storage.FileStorage
	}
)

func NewRecipeService(recipeRepository RecipeRepository, fileStorage storage.FileStorage) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		fileStorage:      fileStorage,
	}
}

// parseIngredients decodes the multipart `ingredients` field. The transport
// cannot carry nested JSON natively, so the field is a JSON-encoded string;
// anything malformed is rejected outright rather than parsed best-effort.
func parseIngredients(raw string) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	if err := json.Unmarshal([]byte(raw), &ingredients); err != nil {
		return nil, domain.ErrInvalidIngredients
	}
	if len(ingredients) == 0 {
		return nil, domain.ErrInvalidIngredients
	}
	for _, ing := range ingredients {
		if strings.TrimSpace(ing.Name) == "" || ing.Quantity <= 0 || strings.TrimSpace(ing.Unit) == "" {
			return nil, domain.ErrInvalidIngredients
		}
	}
	return ingredients, nil
}

// parseInstructions decodes the multipart `instructions` field and checks the
// steps are numbered contiguously from 1.
func parseInstructions(raw string) ([]domain.Instruction, error) {
	var instructions []domain.Instruction
	if err := json.Unmarshal([]byte(raw), &instructions); err != nil {
		return nil, domain.ErrInvalidInstructions
	}
	if len(instructions) == 0 {
		return nil, domain.ErrInvalidInstructions
	}
	for i, ins := range instructions {
		if ins.Step != i+1 || strings.TrimSpace(ins.Text) == "" {
			return nil, domain.ErrInvalidInstructions
		}
	}
	return instructions, nil
}

func validDifficulty(level string) bool {
	switch level {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
		return true
	}
	return false
}

func toRecipe(recipe *entities.Recipe) domain.Recipe {
	return domain.Recipe{
		ID:              recipe.ID.String(),
		Title:           recipe.Title,
		Description:     recipe.Description,
		Category:        recipe.Category,
		DifficultyLevel: recipe.DifficultyLevel,
		CookingTime:     recipe.CookingTime,
		Servings:        recipe.Servings,
		CoverImage:      recipe.CoverImage,
		CreatedBy:       recipe.CreatedBy.String(),
		CreatedAt:       recipe.CreatedAt,
	}
}

func toRecipeDetail(recipe *entities.Recipe) (domain.RecipeDetail, error) {
	var ingredients []domain.Ingredient
	if err := json.Unmarshal([]byte(recipe.Ingredients), &ingredients); err != nil {
		return domain.RecipeDetail{}, err
	}

	var instructions []domain.Instruction
	if err := json.Unmarshal([]byte(recipe.Instructions), &instructions); err != nil {
		return domain.RecipeDetail{}, err
	}

	return domain.RecipeDetail{
		Recipe:       toRecipe(recipe),
		Ingredients:  ingredients,
		Instructions: instructions,
	}, nil
}

func (s *recipeService) GetRecipes(ctx context.Context, query domain.RecipeListQuery) ([]domain.Recipe, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		result = append(result, toRecipe(r))
	}
	return result, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}
	return toRecipeDetail(recipe)
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.SaveRecipeRequest, image *multipart.FileHeader, userID string) (domain.RecipeDetail, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetail{}, domain.ErrParseUUID
	}

	ingredients, err := parseIngredients(req.Ingredients)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	instructions, err := parseInstructions(req.Instructions)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	if !validDifficulty(req.DifficultyLevel) {
		return domain.RecipeDetail{}, domain.ErrInvalidDifficulty
	}

	recipeID := uuid.New()

	var imageURL string
	if image != nil {
		objectKey, err := s.fileStorage.UploadFile(
			fmt.Sprintf("recipe-%s", recipeID.String()),
			image,
			"recipes",
			storage.AllowImage...,
		)
		if err != nil {
			return domain.RecipeDetail{}, err
		}
		imageURL = s.fileStorage.GetPublicLinkKey(objectKey)
	}

	ingredientsJSON, _ := json.Marshal(ingredients)
	instructionsJSON, _ := json.Marshal(instructions)

	recipe := &entities.Recipe{
		ID:              recipeID,
		CreatedBy:       userUUID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		DifficultyLevel: req.DifficultyLevel,
		CookingTime:     req.CookingTime,
		Servings:        req.Servings,
		CoverImage:      imageURL,
		Ingredients:     string(ingredientsJSON),
		Instructions:    string(instructionsJSON),
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetail{}, err
	}

	return toRecipeDetail(recipe)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.SaveRecipeRequest, image *multipart.FileHeader, userID string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	if recipe.CreatedBy.String() != userID {
		return domain.RecipeDetail{}, domain.ErrUnauthorizedRecipeAccess
	}

	ingredients, err := parseIngredients(req.Ingredients)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	instructions, err := parseInstructions(req.Instructions)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	if !validDifficulty(req.DifficultyLevel) {
		return domain.RecipeDetail{}, domain.ErrInvalidDifficulty
	}

	if image != nil {
		objectKey, err := s.fileStorage.UploadFile(
			fmt.Sprintf("recipe-%s", recipe.ID.String()),
			image,
			"recipes",
			storage.AllowImage...,
		)
		if err != nil {
			return domain.RecipeDetail{}, err
		}
		recipe.CoverImage = s.fileStorage.GetPublicLinkKey(objectKey)
	}

	ingredientsJSON, _ := json.Marshal(ingredients)
	instructionsJSON, _ := json.Marshal(instructions)

	recipe.Title = req.Title
	recipe.Description = req.Description
	recipe.Category = req.Category
	recipe.DifficultyLevel = req.DifficultyLevel
	recipe.CookingTime = req.CookingTime
	recipe.Servings = req.Servings
	recipe.Ingredients = string(ingredientsJSON)
	recipe.Instructions = string(instructionsJSON)

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetail{}, err
	}

	return toRecipeDetail(recipe)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if recipe.CreatedBy.String() != userID {
		return domain.ErrUnauthorizedRecipeAccess
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}
