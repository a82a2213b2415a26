package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/nutrition"
)

// RecipeService defines the use cases for the recipe catalogue the planner draws from
type RecipeService interface {
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*RecipeDTO, error)
	ListRecipes(ctx context.Context, query ListRecipesQuery) ([]*RecipeDTO, error)
}

// CreateRecipeCommand adds a recipe to the catalogue
type CreateRecipeCommand struct {
	Title       string
	Category    string
	Ingredients []string
	Nutrition   nutrition.Nutrients
}

// ListRecipesQuery filters the catalogue. Empty categories list everything
// and banned ingredients are excluded.
type ListRecipesQuery struct {
	Categories []string
	Exclude    []string
}

// RecipeDTO is the transport form of a recipe
type RecipeDTO struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Category    string              `json:"category"`
	Ingredients []string            `json:"ingredients"`
	Nutrition   nutrition.Nutrients `json:"nutrition"`
	CreatedAt   time.Time           `json:"created_at"`
}
