package favorite

import (
	"context"
	"errors"

	"yammiverse-backend/domain"
	"yammiverse-backend/entities"
	"yammiverse-backend/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FavoriteService interface {
		GetFavorites(ctx context.Context, page, limit int, userID string) ([]domain.Recipe, int64, error)
		AddFavorite(ctx context.Context, recipeID string, userID string) error
		RemoveFavorite(ctx context.Context, recipeID string, userID string) error
	}

	favoriteService struct {
		favoriteRepository FavoriteRepository
		recipeRepository   recipe.RecipeRepository
	}
)

func NewFavoriteService(favoriteRepository FavoriteRepository, recipeRepository recipe.RecipeRepository) FavoriteService {
	return &favoriteService{
		favoriteRepository: favoriteRepository,
		recipeRepository:   recipeRepository,
	}
}

func (s *favoriteService) GetFavorites(ctx context.Context, page, limit int, userID string) ([]domain.Recipe, int64, error) {
	recipes, count, err := s.favoriteRepository.GetFavoriteRecipes(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		result = append(result, domain.Recipe{
			ID:              r.ID.String(),
			Title:           r.Title,
			Description:     r.Description,
			Category:        r.Category,
			DifficultyLevel: r.DifficultyLevel,
			CookingTime:     r.CookingTime,
			Servings:        r.Servings,
			CoverImage:      r.CoverImage,
			CreatedBy:       r.CreatedBy.String(),
			CreatedAt:       r.CreatedAt,
		})
	}
	return result, count, nil
}

// AddFavorite rejects a duplicate favorite of the same recipe by the same
// user; the unique (user_id, recipe_id) index backs this up under concurrent
// requests.
func (s *favoriteService) AddFavorite(ctx context.Context, recipeID string, userID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}

	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	favorited, err := s.favoriteRepository.IsFavorited(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if favorited {
		return domain.ErrDuplicateFavorite
	}

	return s.favoriteRepository.CreateFavorite(ctx, &entities.Favorite{
		UserID:   userUUID,
		RecipeID: recipeUUID,
	})
}

// RemoveFavorite is idempotent: removing a recipe that was never favorited is
// a no-op, not an error.
func (s *favoriteService) RemoveFavorite(ctx context.Context, recipeID string, userID string) error {
	return s.favoriteRepository.DeleteFavorite(ctx, userID, recipeID)
}
