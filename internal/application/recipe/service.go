// Package recipe provides the application layer for the recipe catalogue
package recipe

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/pkg/errors"
)

// RecipeService implements the recipe catalogue use cases
type RecipeService struct {
	recipeRepo outbound.RecipeRepository
	cache      outbound.CacheRepository
	events     outbound.EventPublisher
	logger     *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	cache outbound.CacheRepository,
	events outbound.EventPublisher,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		cache:      cache,
		events:     events,
		logger:     logger.Named("recipe-service"),
	}
}

var _ inbound.RecipeService = (*RecipeService)(nil)

// CreateRecipe adds a recipe to the catalogue
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Creating new recipe",
		zap.String("title", cmd.Title),
		zap.String("category", cmd.Category),
	)

	category, err := recipe.ParseCategory(cmd.Category)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	recipeEntity, err := recipe.NewRecipe(cmd.Title, category, cmd.Ingredients, cmd.Nutrition)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.recipeRepo.Create(ctx, recipeEntity); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	// New recipes change every cached candidate pool of their category
	s.invalidateCandidatePools(ctx)

	if err := s.events.Publish(ctx, recipeEntity.Events()...); err != nil {
		s.logger.Error("Failed to publish recipe events",
			zap.String("recipe_id", recipeEntity.ID().String()),
			zap.Error(err),
		)
	}

	dto := entityToDTO(recipeEntity)

	s.logger.Info("Recipe created successfully",
		zap.String("recipe_id", dto.ID.String()),
		zap.String("title", dto.Title),
	)

	return dto, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*inbound.RecipeDTO, error) {
	recipeEntity, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewRecipeNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	return entityToDTO(recipeEntity), nil
}

// ListRecipes lists recipes of the requested categories that avoid the excluded ingredients
func (s *RecipeService) ListRecipes(ctx context.Context, query inbound.ListRecipesQuery) ([]*inbound.RecipeDTO, error) {
	categories := make([]recipe.Category, 0, len(query.Categories))
	for _, raw := range query.Categories {
		c, err := recipe.ParseCategory(raw)
		if err != nil {
			return nil, errors.NewValidationError("unknown recipe category " + raw)
		}
		categories = append(categories, c)
	}
	if len(categories) == 0 {
		categories = recipe.AllCategories()
	}

	recipes, err := s.recipeRepo.FindByCategoryExcluding(ctx, categories, query.Exclude)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}

	dtos := make([]*inbound.RecipeDTO, 0, len(recipes))
	for _, r := range recipes {
		dtos = append(dtos, entityToDTO(r))
	}
	return dtos, nil
}

func (s *RecipeService) invalidateCandidatePools(ctx context.Context) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.cache.DeletePrefix(ctx, outbound.CandidatePoolKeyPrefix); err != nil {
		s.logger.Warn("Failed to invalidate candidate pool cache", zap.Error(err))
	}
}

func entityToDTO(r *recipe.Recipe) *inbound.RecipeDTO {
	return &inbound.RecipeDTO{
		ID:          r.ID(),
		Title:       r.Title(),
		Category:    string(r.Category()),
		Ingredients: r.IngredientNames(),
		Nutrition:   r.Nutrition(),
		CreatedAt:   r.CreatedAt(),
	}
}
