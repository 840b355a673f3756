package recipe

import (
	"context"

	"yammiverse-backend/domain"
	"yammiverse-backend/entities"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, query domain.RecipeListQuery) ([]*entities.Recipe, int64, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id string) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, query domain.RecipeListQuery) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (query.Page - 1) * query.Limit

	tx := r.db.WithContext(ctx).Model(&entities.Recipe{})
	if query.Search != "" {
		tx = tx.Where("title ILIKE ?", "%"+query.Search+"%")
	}
	if query.Category != "" {
		tx = tx.Where("category = ?", query.Category)
	}
	if query.Difficulty != "" {
		tx = tx.Where("difficulty_level = ?", query.Difficulty)
	}

	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at desc"
	switch query.Sort {
	case "oldest":
		order = "created_at asc"
	case "title":
		order = "title asc"
	}

	if err := tx.
		Offset(offset).
		Limit(query.Limit).
		Order(order).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

// DeleteRecipe removes the recipe and its favorite rows in one transaction so
// the join table never references a recipe that no longer exists.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}
