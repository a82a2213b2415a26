package nutrition

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/pkg/errors"
)

const roundingPlaces = 2

// Aggregator sums recipe nutrition scaled by portion
type Aggregator struct {
	recipes outbound.RecipeRepository
	logger  *zap.Logger
}

// NewAggregator creates an aggregator reading from recipes
func NewAggregator(recipes outbound.RecipeRepository, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		recipes: recipes,
		logger:  logger.Named("nutrition-aggregator"),
	}
}

// Aggregate returns the rounded total of every portion. Unknown recipes and
// non-positive portions contribute nothing; rounding happens once at the end.
func (a *Aggregator) Aggregate(ctx context.Context, portions []nutrition.Portion) (nutrition.Nutrients, error) {
	var total nutrition.Nutrients
	if len(portions) == 0 {
		return total, nil
	}

	ids := make([]uuid.UUID, 0, len(portions))
	for _, p := range portions {
		if p.Amount > 0 {
			ids = append(ids, p.RecipeID)
		}
	}
	if len(ids) == 0 {
		return total, nil
	}

	found, err := a.recipes.FindByIDs(ctx, ids)
	if err != nil {
		return total, errors.NewDatabaseError("load recipes for aggregation", err)
	}
	byID := make(map[uuid.UUID]nutrition.Nutrients, len(found))
	for _, r := range found {
		byID[r.ID()] = r.Nutrition()
	}

	for _, p := range portions {
		if p.Amount <= 0 {
			continue
		}
		n, ok := byID[p.RecipeID]
		if !ok {
			a.logger.Debug("Recipe missing during aggregation", zap.String("recipe_id", p.RecipeID.String()))
			continue
		}
		total = total.Add(n.Scale(p.Amount))
	}

	return total.Round(roundingPlaces), nil
}
