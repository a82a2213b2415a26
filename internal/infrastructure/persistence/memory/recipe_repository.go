package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// RecipeRepository implements outbound.RecipeRepository over a Store
type RecipeRepository struct {
	store *Store
}

// NewRecipeRepository creates a recipe repository
func NewRecipeRepository(store *Store) *RecipeRepository {
	return &RecipeRepository{store: store}
}

// Create stores a new recipe
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.recipes[rec.ID()]; exists {
		return outbound.ErrDuplicate
	}
	r.store.recipes[rec.ID()] = rec.Snapshot()
	return nil
}

// FindByID retrieves a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.recipes[id]
	if !ok {
		return nil, outbound.ErrNotFound
	}
	return recipe.Restore(s), nil
}

// FindByIDs retrieves the recipes that exist among ids
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*recipe.Recipe, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if s, ok := r.store.recipes[id]; ok {
			out = append(out, recipe.Restore(s))
		}
	}
	return out, nil
}

// FindByCategoryExcluding returns recipes of the given categories free of banned ingredients, ordered by title
func (r *RecipeRepository) FindByCategoryExcluding(ctx context.Context, categories []recipe.Category, banned []string) ([]*recipe.Recipe, error) {
	wanted := make(map[recipe.Category]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}

	r.store.mu.RLock()
	out := make([]*recipe.Recipe, 0)
	for _, s := range r.store.recipes {
		if _, ok := wanted[s.Category]; !ok {
			continue
		}
		rec := recipe.Restore(s)
		if rec.ContainsAnyIngredient(banned) {
			continue
		}
		out = append(out, rec)
	}
	r.store.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Title() != out[j].Title() {
			return out[i].Title() < out[j].Title()
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}
