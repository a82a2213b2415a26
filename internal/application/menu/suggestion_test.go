package menu

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/nutriplan/v1/test/testutils"
)

type SuggestionTestSuite struct {
	suite.Suite
	h      *harness
	ctx    context.Context
	userID uuid.UUID
	date   time.Time

	porridge *recipe.Recipe
	smoothie *recipe.Recipe
	chicken  *recipe.Recipe
	salad    *recipe.Recipe
	salmon   *recipe.Recipe
}

func (suite *SuggestionTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.date = time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	suite.h = newHarness(suite.date.Add(9*time.Hour), nil)
	suite.userID = uuid.New()

	t := suite.T()
	fx := suite.h.fx
	suite.porridge = fx.AddRecipe(t, "Porridge", recipe.CategoryMain, 480, "oats", "milk")
	suite.smoothie = fx.AddRecipe(t, "Berry Smoothie", recipe.CategoryDrink, 300, "berries", "yogurt")
	suite.chicken = fx.AddRecipe(t, "Chicken Bowl", recipe.CategoryMain, 690, "chicken", "rice")
	suite.salad = fx.AddRecipe(t, "Green Salad", recipe.CategorySide, 200, "lettuce")
	suite.salmon = fx.AddRecipe(t, "Baked Salmon", recipe.CategoryMain, 610, "salmon", "potato")
}

func (suite *SuggestionTestSuite) recipeFor(m *inbound.DailyMenuDTO, slot menu.ServingTime) uuid.UUID {
	for _, it := range m.Items {
		if it.ServingTime == string(slot) {
			return it.RecipeID
		}
	}
	return uuid.Nil
}

func (suite *SuggestionTestSuite) TestFallbackTargetDrivesSlotTargets() {
	// No goal: 2000 kcal split into 500 / 700 / 600
	got, err := suite.h.service.SuggestDailyMenu(suite.ctx, inbound.SuggestMenuCommand{UserID: suite.userID, Date: suite.date})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), string(menu.StatusSuggested), got.Status)
	assert.Equal(suite.T(), string(shared.SourceAI), got.Source)
	assert.Equal(suite.T(), "2024-05-20", got.Date)
	require.Len(suite.T(), got.Items, 3)
	assert.Equal(suite.T(), suite.porridge.ID(), suite.recipeFor(got, menu.ServingBreakfast))
	assert.Equal(suite.T(), suite.chicken.ID(), suite.recipeFor(got, menu.ServingLunch))
	assert.Equal(suite.T(), suite.salmon.ID(), suite.recipeFor(got, menu.ServingDinner))
	assert.Equal(suite.T(), 1780.0, got.TotalNutrition.Calories)
	for _, it := range got.Items {
		assert.Equal(suite.T(), menu.DefaultPortion, it.Portion)
		assert.Equal(suite.T(), string(menu.ItemPlanned), it.Status)
	}
}

func (suite *SuggestionTestSuite) TestBannedIngredientsAreNeverSuggested() {
	profile := testutils.NewRecipeFactory(7).Profile("Salmon")
	require.NoError(suite.T(), suite.h.fx.Profiles.Save(suite.ctx, profile))

	got, err := suite.h.service.SuggestDailyMenu(suite.ctx, inbound.SuggestMenuCommand{UserID: profile.ID, Date: suite.date})

	require.NoError(suite.T(), err)
	for _, it := range got.Items {
		assert.NotEqual(suite.T(), suite.salmon.ID(), it.RecipeID)
	}
	assert.Equal(suite.T(), suite.salad.ID(), suite.recipeFor(got, menu.ServingDinner))
}

func (suite *SuggestionTestSuite) TestRecentRecipesArePenalized() {
	suite.h.fx.AddSelectedMenu(suite.T(), suite.userID, shared.AddDays(suite.date, -1), suite.porridge)

	got, err := suite.h.service.SuggestDailyMenu(suite.ctx, inbound.SuggestMenuCommand{UserID: suite.userID, Date: suite.date})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.salmon.ID(), suite.recipeFor(got, menu.ServingBreakfast))
	assert.Equal(suite.T(), suite.chicken.ID(), suite.recipeFor(got, menu.ServingLunch))
	// The penalty is soft: 120 + 210 still beats the salad's 400
	assert.Equal(suite.T(), suite.porridge.ID(), suite.recipeFor(got, menu.ServingDinner))
}

func (suite *SuggestionTestSuite) TestOverwritesExistingLiveMenu() {
	existing := suite.h.fx.AddSelectedMenu(suite.T(), suite.userID, suite.date, suite.salad)

	got, err := suite.h.service.SuggestDailyMenu(suite.ctx, inbound.SuggestMenuCommand{UserID: suite.userID, Date: suite.date})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), existing.ID(), got.ID)
	assert.Equal(suite.T(), string(menu.StatusSuggested), got.Status)

	live, err := suite.h.fx.Menus.FindByUserAndDateRange(suite.ctx, suite.userID, suite.date, suite.date, nil)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), live, 1)
}

func (suite *SuggestionTestSuite) TestRejectsMissingDate() {
	_, err := suite.h.service.SuggestDailyMenu(suite.ctx, inbound.SuggestMenuCommand{UserID: suite.userID})

	assertCode(suite.T(), err, "VALIDATION_FAILED")
}

func TestSuggestionTestSuite(t *testing.T) {
	suite.Run(t, new(SuggestionTestSuite))
}

func TestSuggestionEngine_SkipsSlotsWithoutCandidates(t *testing.T) {
	ctx := context.Background()
	metrics := new(testutils.MockMetrics)
	metrics.On("SlotSkipped", "lunch").Once()
	metrics.On("SlotSkipped", "dinner").Once()
	metrics.On("MenuSuggested", 1).Once()

	date := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	h := newHarness(date, metrics)
	drink := h.fx.AddRecipe(t, "Orange Juice", recipe.CategoryDrink, 110)

	got, err := h.engine.Suggest(ctx, uuid.New(), date, menu.UsageStats{})

	require.NoError(t, err)
	require.Len(t, got.Items(), 1)
	assert.Equal(t, drink.ID(), got.Items()[0].RecipeID)
	assert.Equal(t, menu.ServingBreakfast, got.Items()[0].ServingTime)
	metrics.AssertExpectations(t)
}

func TestSuggestionEngine_EmptyCatalogueStoresEmptySuggestion(t *testing.T) {
	date := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	h := newHarness(date, nil)

	got, err := h.engine.Suggest(context.Background(), uuid.New(), date, menu.UsageStats{})

	require.NoError(t, err)
	assert.Empty(t, got.Items())
	assert.True(t, got.TotalNutrition().IsZero())
	assert.Equal(t, menu.StatusSuggested, got.Status())
}
