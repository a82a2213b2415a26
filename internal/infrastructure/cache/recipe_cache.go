// Package cache provides cache-first decorators over the planner's repositories
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// CachedRecipeRepository serves candidate pools from the cache and falls
// back to the wrapped repository on a miss. Every other call passes through.
type CachedRecipeRepository struct {
	outbound.RecipeRepository

	cache  outbound.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRecipeRepository wraps repo with a candidate pool cache
func NewCachedRecipeRepository(repo outbound.RecipeRepository, cache outbound.CacheRepository, ttl time.Duration, logger *zap.Logger) *CachedRecipeRepository {
	return &CachedRecipeRepository{
		RecipeRepository: repo,
		cache:            cache,
		ttl:              ttl,
		logger:           logger,
	}
}

// Create stores the recipe and drops every cached pool
func (c *CachedRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	if err := c.RecipeRepository.Create(ctx, r); err != nil {
		return err
	}
	if err := c.cache.DeletePrefix(ctx, outbound.CandidatePoolKeyPrefix); err != nil {
		c.logger.Warn("Failed to invalidate candidate pools", zap.Error(err))
	}
	return nil
}

// FindByCategoryExcluding returns the cached pool for the query when present.
// Cache failures degrade to a direct repository read.
func (c *CachedRecipeRepository) FindByCategoryExcluding(ctx context.Context, categories []recipe.Category, banned []string) ([]*recipe.Recipe, error) {
	key := PoolKey(categories, banned)

	data, err := c.cache.Get(ctx, key)
	if err == nil {
		var snapshots []recipe.Snapshot
		if err := json.Unmarshal(data, &snapshots); err == nil {
			out := make([]*recipe.Recipe, 0, len(snapshots))
			for _, s := range snapshots {
				out = append(out, recipe.Restore(s))
			}
			c.logger.Debug("Candidate pool cache hit", zap.String("key", key), zap.Int("recipes", len(out)))
			return out, nil
		}
		c.logger.Error("Failed to unmarshal cached candidate pool", zap.String("key", key), zap.Error(err))
	} else if !errors.Is(err, outbound.ErrCacheMiss) {
		c.logger.Warn("Candidate pool cache read failed", zap.String("key", key), zap.Error(err))
	}

	recipes, err := c.RecipeRepository.FindByCategoryExcluding(ctx, categories, banned)
	if err != nil {
		return nil, err
	}

	snapshots := make([]recipe.Snapshot, 0, len(recipes))
	for _, r := range recipes {
		snapshots = append(snapshots, r.Snapshot())
	}
	if data, err := json.Marshal(snapshots); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn("Failed to cache candidate pool", zap.String("key", key), zap.Error(err))
		}
	}
	return recipes, nil
}

// PoolKey builds an order-insensitive cache key for a candidate query
func PoolKey(categories []recipe.Category, banned []string) string {
	cats := make([]string, 0, len(categories))
	for _, c := range categories {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)

	names := make([]string, 0, len(banned))
	for _, b := range banned {
		if n := recipe.NormalizeIngredient(b); n != "" {
			names = append(names, n)
		}
	}
	sort.Strings(names)

	sum := sha256.Sum256([]byte(strings.Join(names, "\x00")))
	return outbound.CandidatePoolKeyPrefix + strings.Join(cats, ",") + ":" + hex.EncodeToString(sum[:8])
}

var _ outbound.RecipeRepository = (*CachedRecipeRepository)(nil)
