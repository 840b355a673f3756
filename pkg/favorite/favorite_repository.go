package favorite

import (
	"context"
	"time"

	"yammiverse-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FavoriteRepository interface {
		CreateFavorite(ctx context.Context, favorite *entities.Favorite) error
		DeleteFavorite(ctx context.Context, userID, recipeID string) error
		IsFavorited(ctx context.Context, userID, recipeID string) (bool, error)
		GetFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error)
	}

	favoriteRepository struct {
		db *gorm.DB
	}
)

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) CreateFavorite(ctx context.Context, favorite *entities.Favorite) error {
	if favorite.ID == uuid.Nil {
		favorite.ID = uuid.New()
	}
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *favoriteRepository) DeleteFavorite(ctx context.Context, userID, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{}).Error
}

func (r *favoriteRepository) IsFavorited(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) GetFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Joins("JOIN favorites ON recipes.id = favorites.recipe_id").
		Where("favorites.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON recipes.id = favorites.recipe_id").
		Where("favorites.user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("favorites.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}
