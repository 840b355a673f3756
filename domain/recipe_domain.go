package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("only the recipe owner may modify it")
	ErrInvalidIngredients       = errors.New("ingredients must be a non-empty JSON array of {name, quantity, unit}")
	ErrInvalidInstructions      = errors.New("instructions must be a non-empty JSON array with steps numbered from 1")
	ErrInvalidDifficulty        = errors.New("difficulty must be one of: easy, medium, hard")
	ErrImageTooLarge            = errors.New("image exceeds the 5MB limit")
	ErrUnsupportedImageType     = errors.New("image must be jpg, jpeg, png or webp")
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type (
	Ingredient struct {
		Name     string  `json:"name" validate:"required"`
		Quantity float64 `json:"quantity" validate:"required,gt=0"`
		Unit     string  `json:"unit" validate:"required"`
	}

	Instruction struct {
		Step int    `json:"step" validate:"required,gt=0"`
		Text string `json:"text" validate:"required"`
	}

	// SaveRecipeRequest carries the multipart text fields of a recipe create or
	// update. Ingredients and Instructions arrive as JSON-encoded strings and
	// are parsed strictly before anything is persisted.
	SaveRecipeRequest struct {
		Title           string `form:"title" validate:"required,min=2,max=200"`
		Description     string `form:"description" validate:"max=2000"`
		Category        string `form:"category" validate:"required"`
		DifficultyLevel string `form:"difficulty" validate:"required"`
		CookingTime     int    `form:"cooking_time" validate:"required,gt=0"`
		Servings        int    `form:"servings" validate:"required,gt=0"`
		Ingredients     string `form:"ingredients" validate:"required"`
		Instructions    string `form:"instructions" validate:"required"`
	}

	RecipeListQuery struct {
		Search     string
		Category   string
		Difficulty string
		Sort       string // newest, oldest, title
		Page       int
		Limit      int
	}

	Recipe struct {
		ID              string    `json:"id"`
		Title           string    `json:"title"`
		Description     string    `json:"description"`
		Category        string    `json:"category"`
		DifficultyLevel string    `json:"difficulty_level"`
		CookingTime     int       `json:"cooking_time"`
		Servings        int       `json:"servings"`
		CoverImage      string    `json:"cover_image,omitempty"`
		CreatedBy       string    `json:"created_by"`
		CreatedAt       time.Time `json:"created_at"`
	}

	RecipeDetail struct {
		Recipe
		Ingredients  []Ingredient  `json:"ingredients"`
		Instructions []Instruction `json:"instructions"`
	}
)
