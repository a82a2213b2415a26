// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces the planner uses to reach storage and other systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/plan"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/domain/user"
)

// Errors every adapter reports in the same way
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicate     = errors.New("record already exists")
	ErrArchivedWrite = errors.New("archived record cannot be written")
	ErrCacheMiss     = errors.New("cache miss")
)

// CandidatePoolKeyPrefix namespaces cached recipe candidate pools
const CandidatePoolKeyPrefix = "recipes:pool:"

// UserProfileRepository reads diet profiles
type UserProfileRepository interface {
	FindByID(ctx context.Context, userID uuid.UUID) (*user.Profile, error)
	Save(ctx context.Context, profile *user.Profile) error
}

// NutritionGoalRepository reads and records nutrition goals
type NutritionGoalRepository interface {
	// FindActiveLatest returns the most recently created active goal
	FindActiveLatest(ctx context.Context, userID uuid.UUID) (*nutrition.Goal, error)
	Create(ctx context.Context, goal *nutrition.Goal) error
}

// RecipeRepository defines the interface for recipe persistence
type RecipeRepository interface {
	Create(ctx context.Context, recipe *recipe.Recipe) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)

	// FindByIDs returns the recipes that exist; unknown IDs are skipped
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error)

	// FindByCategoryExcluding returns recipes in any of the categories whose
	// ingredients contain none of the banned names
	FindByCategoryExcluding(ctx context.Context, categories []recipe.Category, banned []string) ([]*recipe.Recipe, error)
}

// DailyMenuRepository defines the interface for daily menu persistence
type DailyMenuRepository interface {
	// Create fails with ErrDuplicate when a live menu already exists for the user and date
	Create(ctx context.Context, m *menu.DailyMenu) error

	// Save fails with ErrArchivedWrite when the stored menu is archived
	Save(ctx context.Context, m *menu.DailyMenu) error

	FindByID(ctx context.Context, id uuid.UUID) (*menu.DailyMenu, error)

	// FindByUserAndDate returns the live (non-archived) menu for a date
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*menu.DailyMenu, error)

	// FindByUserAndDateRange lists menus with start <= date <= end, ordered by date.
	// A nil status excludes archived menus.
	FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time, status *menu.Status) ([]*menu.DailyMenu, error)
}

// MealPlanRepository defines the interface for meal plan persistence
type MealPlanRepository interface {
	Create(ctx context.Context, p *plan.MealPlan) error
	Save(ctx context.Context, p *plan.MealPlan) error
	FindByID(ctx context.Context, id uuid.UUID) (*plan.MealPlan, error)

	// FindByUser lists a user's plans, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*plan.MealPlan, error)

	// FindByDailyMenuID lists the plans referencing a menu
	FindByDailyMenuID(ctx context.Context, menuID uuid.UUID) ([]*plan.MealPlan, error)

	// CancelAllSuggestedExcept cancels every suggested plan of the user other
	// than keepID and returns how many were cancelled
	CancelAllSuggestedExcept(ctx context.Context, userID, keepID uuid.UUID) (int64, error)

	// DeleteIfSuggested removes the plan only while it is suggested
	DeleteIfSuggested(ctx context.Context, userID, planID uuid.UUID) (bool, error)
}

// Repositories are the stores a unit of work binds to one transaction
type Repositories struct {
	Menus DailyMenuRepository
	Plans MealPlanRepository
}

// UnitOfWork runs fn against transaction-bound repositories. Any error
// returned by fn rolls back every write it made.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	// Get returns ErrCacheMiss for absent or expired keys
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// EventPublisher forwards drained domain events to interested systems
type EventPublisher interface {
	Publish(ctx context.Context, events ...shared.DomainEvent) error
}

// MetricsRecorder records planner activity
type MetricsRecorder interface {
	MenuSuggested(filledSlots int)
	SlotSkipped(slot string)
	MenuForked()
	MenuEdited()
	ItemStatusRejected(reason string)
	PlanTransition(from, to string)
	PlansCancelled(count int64)
}
