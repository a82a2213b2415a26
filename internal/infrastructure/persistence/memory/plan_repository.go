package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/plan"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// MealPlanRepository implements outbound.MealPlanRepository over a Store
type MealPlanRepository struct {
	store *Store
}

// NewMealPlanRepository creates a meal plan repository
func NewMealPlanRepository(store *Store) *MealPlanRepository {
	return &MealPlanRepository{store: store}
}

// Create stores a new plan
func (r *MealPlanRepository) Create(ctx context.Context, p *plan.MealPlan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.plans[p.ID()]; exists {
		return outbound.ErrDuplicate
	}
	r.store.plans[p.ID()] = p.Snapshot()
	return nil
}

// Save replaces a stored plan
func (r *MealPlanRepository) Save(ctx context.Context, p *plan.MealPlan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.plans[p.ID()]; !exists {
		return outbound.ErrNotFound
	}
	r.store.plans[p.ID()] = p.Snapshot()
	return nil
}

// FindByID retrieves a plan by ID
func (r *MealPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*plan.MealPlan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.plans[id]
	if !ok {
		return nil, outbound.ErrNotFound
	}
	return plan.Restore(s), nil
}

// FindByUser lists a user's plans, newest first
func (r *MealPlanRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*plan.MealPlan, error) {
	return r.filter(func(s plan.Snapshot) bool { return s.UserID == userID }), nil
}

// FindByDailyMenuID lists the plans referencing menuID
func (r *MealPlanRepository) FindByDailyMenuID(ctx context.Context, menuID uuid.UUID) ([]*plan.MealPlan, error) {
	return r.filter(func(s plan.Snapshot) bool {
		for _, id := range s.DailyMenuIDs {
			if id == menuID {
				return true
			}
		}
		return false
	}), nil
}

// CancelAllSuggestedExcept cancels the user's other suggested plans
func (r *MealPlanRepository) CancelAllSuggestedExcept(ctx context.Context, userID, keepID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var cancelled int64
	now := time.Now()
	for id, s := range r.store.plans {
		if s.UserID != userID || id == keepID || s.Status != plan.StatusSuggested {
			continue
		}
		s.Status = plan.StatusCancelled
		s.UpdatedAt = now
		r.store.plans[id] = s
		cancelled++
	}
	return cancelled, nil
}

// DeleteIfSuggested removes the plan only while it is suggested
func (r *MealPlanRepository) DeleteIfSuggested(ctx context.Context, userID, planID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.plans[planID]
	if !ok || s.UserID != userID || s.Status != plan.StatusSuggested {
		return false, nil
	}
	delete(r.store.plans, planID)
	return true, nil
}

func (r *MealPlanRepository) filter(keep func(plan.Snapshot) bool) []*plan.MealPlan {
	r.store.mu.RLock()
	matched := make([]plan.Snapshot, 0)
	for _, s := range r.store.plans {
		if keep(s) {
			matched = append(matched, s)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	out := make([]*plan.MealPlan, 0, len(matched))
	for _, s := range matched {
		out = append(out, plan.Restore(s))
	}
	return out
}
