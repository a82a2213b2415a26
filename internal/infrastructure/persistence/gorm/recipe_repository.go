package gorm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutriplan/v1/internal/domain/recipe"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create creates a new recipe
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	if err := r.db.WithContext(ctx).Create(RecipeToModel(rec)).Error; err != nil {
		return TranslateError(err)
	}
	return nil
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, TranslateError(err)
	}
	return ModelToRecipe(&model), nil
}

// FindByIDs returns the recipes that exist among ids
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	if len(ids) == 0 {
		return []*recipe.Recipe{}, nil
	}

	var models []RecipeModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find recipes by id: %w", TranslateError(err))
	}

	out := make([]*recipe.Recipe, 0, len(models))
	for i := range models {
		out = append(out, ModelToRecipe(&models[i]))
	}
	return out, nil
}

// FindByCategoryExcluding filters by category in SQL and drops recipes
// with banned ingredients in process, since ingredient lists are stored as JSON
func (r *RecipeRepository) FindByCategoryExcluding(ctx context.Context, categories []recipe.Category, banned []string) ([]*recipe.Recipe, error) {
	if len(categories) == 0 {
		return []*recipe.Recipe{}, nil
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c))
	}

	var models []RecipeModel
	err := r.db.WithContext(ctx).
		Where("category IN ?", names).
		Order("title ASC").
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("find recipes by category: %w", TranslateError(err))
	}

	out := make([]*recipe.Recipe, 0, len(models))
	for i := range models {
		rec := ModelToRecipe(&models[i])
		if rec.ContainsAnyIngredient(banned) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
