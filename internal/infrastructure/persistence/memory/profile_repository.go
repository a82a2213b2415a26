package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/user"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// ProfileRepository implements outbound.UserProfileRepository over a Store
type ProfileRepository struct {
	store *Store
}

// NewProfileRepository creates a profile repository
func NewProfileRepository(store *Store) *ProfileRepository {
	return &ProfileRepository{store: store}
}

// FindByID retrieves a user's profile
func (r *ProfileRepository) FindByID(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.profiles[userID]
	if !ok {
		return nil, outbound.ErrNotFound
	}
	p.BannedIngredients = append([]string(nil), p.BannedIngredients...)
	return &p, nil
}

// Save creates or replaces a profile
func (r *ProfileRepository) Save(ctx context.Context, profile *user.Profile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p := *profile
	p.BannedIngredients = append([]string(nil), profile.BannedIngredients...)
	r.store.profiles[p.ID] = p
	return nil
}

// GoalRepository implements outbound.NutritionGoalRepository over a Store
type GoalRepository struct {
	store *Store
}

// NewGoalRepository creates a goal repository
func NewGoalRepository(store *Store) *GoalRepository {
	return &GoalRepository{store: store}
}

// FindActiveLatest returns the user's most recently created active goal
func (r *GoalRepository) FindActiveLatest(ctx context.Context, userID uuid.UUID) (*nutrition.Goal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var latest *nutrition.Goal
	for _, g := range r.store.goals {
		if g.UserID != userID || !g.Active {
			continue
		}
		if latest == nil || g.CreatedAt.After(latest.CreatedAt) {
			found := g
			latest = &found
		}
	}
	if latest == nil {
		return nil, outbound.ErrNotFound
	}
	return latest, nil
}

// Create stores a goal
func (r *GoalRepository) Create(ctx context.Context, goal *nutrition.Goal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.goals[goal.ID]; exists {
		return outbound.ErrDuplicate
	}
	r.store.goals[goal.ID] = *goal
	return nil
}
