package testutils

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/ports/inbound"
)

// MockMenuService provides a mock implementation of inbound.MenuService
type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) menu(args mock.Arguments) (*inbound.DailyMenuDTO, error) {
	dto, _ := args.Get(0).(*inbound.DailyMenuDTO)
	return dto, args.Error(1)
}

func (m *MockMenuService) SuggestDailyMenu(ctx context.Context, cmd inbound.SuggestMenuCommand) (*inbound.DailyMenuDTO, error) {
	return m.menu(m.Called(ctx, cmd))
}

func (m *MockMenuService) CreateOrUpdateDailyMenu(ctx context.Context, cmd inbound.CreateOrUpdateMenuCommand) (*inbound.DailyMenuDTO, error) {
	return m.menu(m.Called(ctx, cmd))
}

func (m *MockMenuService) AddRecipeToMenu(ctx context.Context, cmd inbound.AddRecipeCommand) (*inbound.DailyMenuDTO, error) {
	return m.menu(m.Called(ctx, cmd))
}

func (m *MockMenuService) SetItemStatus(ctx context.Context, cmd inbound.SetItemStatusCommand) (*inbound.DailyMenuDTO, error) {
	return m.menu(m.Called(ctx, cmd))
}

func (m *MockMenuService) EditMenu(ctx context.Context, cmd inbound.EditMenuCommand) (*inbound.DailyMenuDTO, error) {
	return m.menu(m.Called(ctx, cmd))
}

func (m *MockMenuService) SubmitFeedback(ctx context.Context, cmd inbound.SubmitFeedbackCommand) (*inbound.DailyMenuDTO, error) {
	return m.menu(m.Called(ctx, cmd))
}

func (m *MockMenuService) GetMenu(ctx context.Context, userID, menuID uuid.UUID) (*inbound.DailyMenuDTO, error) {
	return m.menu(m.Called(ctx, userID, menuID))
}

func (m *MockMenuService) ListMenus(ctx context.Context, query inbound.ListMenusQuery) ([]*inbound.DailyMenuDTO, error) {
	args := m.Called(ctx, query)
	dtos, _ := args.Get(0).([]*inbound.DailyMenuDTO)
	return dtos, args.Error(1)
}

// MockPlanService provides a mock implementation of inbound.PlanService
type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) CreatePlan(ctx context.Context, cmd inbound.CreatePlanCommand) (*inbound.MealPlanDTO, error) {
	args := m.Called(ctx, cmd)
	dto, _ := args.Get(0).(*inbound.MealPlanDTO)
	return dto, args.Error(1)
}

func (m *MockPlanService) UpdatePlanStatus(ctx context.Context, cmd inbound.UpdatePlanStatusCommand) (*inbound.MealPlanDTO, error) {
	args := m.Called(ctx, cmd)
	dto, _ := args.Get(0).(*inbound.MealPlanDTO)
	return dto, args.Error(1)
}

func (m *MockPlanService) DeletePlan(ctx context.Context, userID, planID uuid.UUID) error {
	return m.Called(ctx, userID, planID).Error(0)
}

func (m *MockPlanService) GetPlan(ctx context.Context, userID, planID uuid.UUID) (*inbound.MealPlanDTO, error) {
	args := m.Called(ctx, userID, planID)
	dto, _ := args.Get(0).(*inbound.MealPlanDTO)
	return dto, args.Error(1)
}

func (m *MockPlanService) ListPlans(ctx context.Context, userID uuid.UUID) ([]*inbound.MealPlanDTO, error) {
	args := m.Called(ctx, userID)
	dtos, _ := args.Get(0).([]*inbound.MealPlanDTO)
	return dtos, args.Error(1)
}

// MockRecipeService provides a mock implementation of inbound.RecipeService
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, cmd)
	dto, _ := args.Get(0).(*inbound.RecipeDTO)
	return dto, args.Error(1)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, id)
	dto, _ := args.Get(0).(*inbound.RecipeDTO)
	return dto, args.Error(1)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, query inbound.ListRecipesQuery) ([]*inbound.RecipeDTO, error) {
	args := m.Called(ctx, query)
	dtos, _ := args.Get(0).([]*inbound.RecipeDTO)
	return dtos, args.Error(1)
}

// MockProfileService provides a mock implementation of inbound.ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) SaveProfile(ctx context.Context, cmd inbound.SaveProfileCommand) (*inbound.ProfileDTO, error) {
	args := m.Called(ctx, cmd)
	dto, _ := args.Get(0).(*inbound.ProfileDTO)
	return dto, args.Error(1)
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*inbound.ProfileDTO, error) {
	args := m.Called(ctx, userID)
	dto, _ := args.Get(0).(*inbound.ProfileDTO)
	return dto, args.Error(1)
}

func (m *MockProfileService) SetGoal(ctx context.Context, cmd inbound.SetGoalCommand) (*inbound.GoalDTO, error) {
	args := m.Called(ctx, cmd)
	dto, _ := args.Get(0).(*inbound.GoalDTO)
	return dto, args.Error(1)
}

func (m *MockProfileService) GetDailyTarget(ctx context.Context, userID uuid.UUID) (nutrition.Nutrients, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(nutrition.Nutrients), args.Error(1)
}

var (
	_ inbound.MenuService    = (*MockMenuService)(nil)
	_ inbound.PlanService    = (*MockPlanService)(nil)
	_ inbound.RecipeService  = (*MockRecipeService)(nil)
	_ inbound.ProfileService = (*MockProfileService)(nil)
)
