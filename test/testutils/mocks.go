package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/user"
)

// MockProfileRepository provides a mock implementation of UserProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*user.Profile)
	return p, args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *user.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

// MockGoalRepository provides a mock implementation of NutritionGoalRepository
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) FindActiveLatest(ctx context.Context, userID uuid.UUID) (*nutrition.Goal, error) {
	args := m.Called(ctx, userID)
	g, _ := args.Get(0).(*nutrition.Goal)
	return g, args.Error(1)
}

func (m *MockGoalRepository) Create(ctx context.Context, goal *nutrition.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

// MockRecipeRepository provides a mock implementation of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*recipe.Recipe)
	return r, args.Error(1)
}

func (m *MockRecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, ids)
	rs, _ := args.Get(0).([]*recipe.Recipe)
	return rs, args.Error(1)
}

func (m *MockRecipeRepository) FindByCategoryExcluding(ctx context.Context, categories []recipe.Category, banned []string) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, categories, banned)
	rs, _ := args.Get(0).([]*recipe.Recipe)
	return rs, args.Error(1)
}

// MockMenuRepository provides a mock implementation of DailyMenuRepository
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) Create(ctx context.Context, dm *menu.DailyMenu) error {
	return m.Called(ctx, dm).Error(0)
}

func (m *MockMenuRepository) Save(ctx context.Context, dm *menu.DailyMenu) error {
	return m.Called(ctx, dm).Error(0)
}

func (m *MockMenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.DailyMenu, error) {
	args := m.Called(ctx, id)
	dm, _ := args.Get(0).(*menu.DailyMenu)
	return dm, args.Error(1)
}

func (m *MockMenuRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*menu.DailyMenu, error) {
	args := m.Called(ctx, userID, date)
	dm, _ := args.Get(0).(*menu.DailyMenu)
	return dm, args.Error(1)
}

func (m *MockMenuRepository) FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time, status *menu.Status) ([]*menu.DailyMenu, error) {
	args := m.Called(ctx, userID, start, end, status)
	dms, _ := args.Get(0).([]*menu.DailyMenu)
	return dms, args.Error(1)
}

// MockMetrics records calls to MetricsRecorder
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) MenuSuggested(filledSlots int)    { m.Called(filledSlots) }
func (m *MockMetrics) SlotSkipped(slot string)          { m.Called(slot) }
func (m *MockMetrics) MenuForked()                      { m.Called() }
func (m *MockMetrics) MenuEdited()                      { m.Called() }
func (m *MockMetrics) ItemStatusRejected(reason string) { m.Called(reason) }
func (m *MockMetrics) PlanTransition(from, to string)   { m.Called(from, to) }
func (m *MockMetrics) PlansCancelled(count int64)       { m.Called(count) }
