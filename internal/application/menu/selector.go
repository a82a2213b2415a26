// Package menu implements daily menu suggestion and the editing workflow
package menu

import (
	"context"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/pkg/errors"
)

// SelectorConfig weights the candidate scoring terms
type SelectorConfig struct {
	RecentPenalty   float64
	FrequencyWeight float64
	NoiseMax        float64
}

// DefaultSelectorConfig returns the stock scoring weights
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{RecentPenalty: 200, FrequencyWeight: 10, NoiseMax: 5}
}

// NoiseSource yields values in [0, 1)
type NoiseSource interface {
	Float64() float64
}

type randomNoise struct{}

func (randomNoise) Float64() float64 { return rand.Float64() }

// ZeroNoise makes selection deterministic
type ZeroNoise struct{}

func (ZeroNoise) Float64() float64 { return 0 }

// SelectionRequest describes one meal slot to fill
type SelectionRequest struct {
	TargetCalories    float64
	Categories        []recipe.Category
	BannedIngredients []string
	ExcludeIDs        map[uuid.UUID]struct{}
	Usage             menu.UsageStats
}

// CandidateSelector picks the recipe closest to a calorie target while
// penalizing recent and frequent use
type CandidateSelector struct {
	recipes outbound.RecipeRepository
	cfg     SelectorConfig
	noise   NoiseSource
}

// NewCandidateSelector creates a selector; a nil noise source uses math/rand
func NewCandidateSelector(recipes outbound.RecipeRepository, cfg SelectorConfig, noise NoiseSource) *CandidateSelector {
	if noise == nil {
		noise = randomNoise{}
	}
	return &CandidateSelector{recipes: recipes, cfg: cfg, noise: noise}
}

// Pick returns the lowest-scoring eligible recipe, or nil when nothing is eligible.
// Ties keep the earlier candidate in pool order.
func (s *CandidateSelector) Pick(ctx context.Context, req SelectionRequest) (*recipe.Recipe, error) {
	pool, err := s.recipes.FindByCategoryExcluding(ctx, req.Categories, req.BannedIngredients)
	if err != nil {
		return nil, errors.NewDatabaseError("load candidate recipes", err)
	}

	var (
		best      *recipe.Recipe
		bestScore = math.Inf(1)
	)
	for _, r := range pool {
		if _, excluded := req.ExcludeIDs[r.ID()]; excluded {
			continue
		}
		if r.ContainsAnyIngredient(req.BannedIngredients) {
			continue
		}
		if score := s.score(r, req); score < bestScore {
			best, bestScore = r, score
		}
	}
	return best, nil
}

func (s *CandidateSelector) score(r *recipe.Recipe, req SelectionRequest) float64 {
	score := math.Abs(r.Calories() - req.TargetCalories)
	if req.Usage.IsRecent(r.ID()) {
		score += s.cfg.RecentPenalty
	}
	score += s.cfg.FrequencyWeight * float64(req.Usage.Count(r.ID()))
	score += s.cfg.NoiseMax * s.noise.Float64()
	return score
}
