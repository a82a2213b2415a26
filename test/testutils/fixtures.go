package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/infrastructure/persistence/memory"
)

// MemoryFixture wires every in-memory repository over one store
type MemoryFixture struct {
	Store    *memory.Store
	Recipes  *memory.RecipeRepository
	Profiles *memory.ProfileRepository
	Goals    *memory.GoalRepository
	Menus    *memory.DailyMenuRepository
	Plans    *memory.MealPlanRepository
	UoW      *memory.UnitOfWork
}

// NewMemoryFixture creates an empty in-memory fixture
func NewMemoryFixture() *MemoryFixture {
	store := memory.NewStore()
	return &MemoryFixture{
		Store:    store,
		Recipes:  memory.NewRecipeRepository(store),
		Profiles: memory.NewProfileRepository(store),
		Goals:    memory.NewGoalRepository(store),
		Menus:    memory.NewDailyMenuRepository(store),
		Plans:    memory.NewMealPlanRepository(store),
		UoW:      memory.NewUnitOfWork(store),
	}
}

// TestingT is the subset of testing.T the fixture helpers need
type TestingT interface {
	require.TestingT
	Helper()
}

// AddRecipe stores a recipe built from title, category, calories and ingredients
func (f *MemoryFixture) AddRecipe(t TestingT, title string, category recipe.Category, calories float64, ingredients ...string) *recipe.Recipe {
	t.Helper()
	r := NewRecipeBuilder().
		WithTitle(title).
		WithCategory(category).
		WithCalories(calories).
		WithIngredients(ingredients...).
		Build()
	require.NoError(t, f.Recipes.Create(context.Background(), r))
	return r
}

// AddGoal stores an active goal for the user
func (f *MemoryFixture) AddGoal(t TestingT, userID uuid.UUID, target nutrition.Nutrients, period nutrition.Period, periodValue int) *nutrition.Goal {
	t.Helper()
	g, err := nutrition.NewGoal(userID, target, period, periodValue)
	require.NoError(t, err)
	require.NoError(t, f.Goals.Create(context.Background(), g))
	return g
}

// AddSuggestedMenu stores an AI suggestion holding the given recipes
func (f *MemoryFixture) AddSuggestedMenu(t TestingT, userID uuid.UUID, date time.Time, recipes ...*recipe.Recipe) *menu.DailyMenu {
	t.Helper()
	m, err := menu.NewSuggestedMenu(userID, date, Items(t, menu.ServingLunch, recipes...), nutrition.Nutrients{})
	require.NoError(t, err)
	m.Events()
	require.NoError(t, f.Menus.Create(context.Background(), m))
	return m
}

// AddSelectedMenu stores a user-composed menu holding the given recipes
func (f *MemoryFixture) AddSelectedMenu(t TestingT, userID uuid.UUID, date time.Time, recipes ...*recipe.Recipe) *menu.DailyMenu {
	t.Helper()
	m, err := menu.NewSelectedMenu(userID, date, Items(t, menu.ServingLunch, recipes...), nutrition.Nutrients{})
	require.NoError(t, err)
	m.Events()
	require.NoError(t, f.Menus.Create(context.Background(), m))
	return m
}

// Items builds one default-portion item per recipe
func Items(t TestingT, servingTime menu.ServingTime, recipes ...*recipe.Recipe) []menu.Item {
	t.Helper()
	items := make([]menu.Item, 0, len(recipes))
	for _, r := range recipes {
		it, err := menu.NewItem(r.ID(), nil, "", servingTime)
		require.NoError(t, err)
		items = append(items, it)
	}
	return items
}

// FixedClock returns a clock function always reporting now
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}
