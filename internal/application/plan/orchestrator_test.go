package plan

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	appmenu "github.com/nutriplan/v1/internal/application/menu"
	appnutrition "github.com/nutriplan/v1/internal/application/nutrition"
	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/plan"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"github.com/nutriplan/v1/test/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	fx           *testutils.MemoryFixture
	metrics      *testutils.MockMetrics
	orchestrator *Orchestrator
	ctx          context.Context
	userID       uuid.UUID
	start        time.Time
}

func (suite *OrchestratorTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.start = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	suite.userID = uuid.New()
	suite.fx = testutils.NewMemoryFixture()
	suite.metrics = new(testutils.MockMetrics)

	log := zap.NewNop()
	nop := outbound.NopMetrics{}
	resolver := appnutrition.NewTargetResolver(suite.fx.Profiles, suite.fx.Goals, nutrition.StandardDefaults(), log)
	aggregator := appnutrition.NewAggregator(suite.fx.Recipes, log)
	selector := appmenu.NewCandidateSelector(suite.fx.Recipes, appmenu.DefaultSelectorConfig(), appmenu.ZeroNoise{})
	engine := appmenu.NewSuggestionEngine(resolver, selector, aggregator, suite.fx.Profiles, suite.fx.Menus,
		appmenu.DefaultSlotWeights(), nop, outbound.NopPublisher{}, log)
	editor := appmenu.NewEditor(suite.fx.Menus, suite.fx.UoW, aggregator, appmenu.DefaultEditorConfig(),
		testutils.FixedClock(suite.start), nop, outbound.NopPublisher{}, log)
	menus := appmenu.NewService(engine, editor, suite.fx.Menus, suite.fx.Recipes, appmenu.DefaultUsageConfig(), log)

	suite.orchestrator = NewOrchestrator(menus, suite.fx.Plans, suite.fx.UoW, suite.metrics, outbound.NopPublisher{}, log)
}

func (suite *OrchestratorTestSuite) menuStatuses(p *inbound.MealPlanDTO) []menu.Status {
	statuses := make([]menu.Status, 0, len(p.DailyMenuIDs))
	for _, id := range p.DailyMenuIDs {
		m, err := suite.fx.Menus.FindByID(suite.ctx, id)
		require.NoError(suite.T(), err)
		statuses = append(statuses, m.Status())
	}
	return statuses
}

func (suite *OrchestratorTestSuite) createPlan(cmd inbound.CreatePlanCommand) *inbound.MealPlanDTO {
	p, err := suite.orchestrator.CreatePlan(suite.ctx, cmd)
	require.NoError(suite.T(), err)
	return p
}

func (suite *OrchestratorTestSuite) TestCreateWeekWithoutContentIsPlanned() {
	got := suite.createPlan(inbound.CreatePlanCommand{UserID: suite.userID, StartDate: suite.start, Period: "week"})

	assert.Equal(suite.T(), string(plan.StatusPlanned), got.Status)
	assert.Equal(suite.T(), string(shared.SourceUser), got.Source)
	assert.Equal(suite.T(), "2024-07-01", got.StartDate)
	assert.Equal(suite.T(), "2024-07-07", got.EndDate)
	require.Len(suite.T(), got.DailyMenuIDs, 7)
	for _, s := range suite.menuStatuses(got) {
		assert.Equal(suite.T(), menu.StatusPlanned, s)
	}
}

func (suite *OrchestratorTestSuite) TestSuppliedContentMakesPlanSuggested() {
	r := suite.fx.AddRecipe(suite.T(), "Miso Soup", recipe.CategorySoup, 80)

	got := suite.createPlan(inbound.CreatePlanCommand{
		UserID:    suite.userID,
		StartDate: suite.start,
		Period:    "week",
		PerDayRecipes: map[int][]inbound.MenuItemInput{
			2: {{RecipeID: r.ID(), ServingTime: "dinner"}},
		},
	})

	assert.Equal(suite.T(), string(plan.StatusSuggested), got.Status)
	assert.Equal(suite.T(), string(shared.SourceAI), got.Source)
	statuses := suite.menuStatuses(got)
	assert.Equal(suite.T(), menu.StatusSuggested, statuses[2])
	assert.Equal(suite.T(), menu.StatusPlanned, statuses[0])

	day2, err := suite.fx.Menus.FindByID(suite.ctx, got.DailyMenuIDs[2])
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 80.0, day2.TotalNutrition().Calories)
	assert.Equal(suite.T(), shared.AddDays(suite.start, 2), day2.Date())
}

func (suite *OrchestratorTestSuite) TestUseAIGeneratesEveryDay() {
	suite.fx.AddRecipe(suite.T(), "Chicken Bowl", recipe.CategoryMain, 650)

	got := suite.createPlan(inbound.CreatePlanCommand{UserID: suite.userID, StartDate: suite.start, Period: "day", UseAI: true})

	assert.Equal(suite.T(), string(plan.StatusSuggested), got.Status)
	assert.Equal(suite.T(), got.StartDate, got.EndDate)
	require.Len(suite.T(), got.DailyMenuIDs, 1)
	assert.Equal(suite.T(), []menu.Status{menu.StatusSuggested}, suite.menuStatuses(got))
}

func (suite *OrchestratorTestSuite) TestReusesExistingLiveMenu() {
	r := suite.fx.AddRecipe(suite.T(), "Chicken Bowl", recipe.CategoryMain, 650)
	existing := suite.fx.AddSelectedMenu(suite.T(), suite.userID, suite.start, r)

	got := suite.createPlan(inbound.CreatePlanCommand{UserID: suite.userID, StartDate: suite.start, Period: "day"})

	assert.Equal(suite.T(), []uuid.UUID{existing.ID()}, got.DailyMenuIDs)
}

func (suite *OrchestratorTestSuite) TestRejectsInvalidCommands() {
	r := suite.fx.AddRecipe(suite.T(), "Chicken Bowl", recipe.CategoryMain, 650)
	commands := map[string]inbound.CreatePlanCommand{
		"UnknownPeriod": {UserID: suite.userID, StartDate: suite.start, Period: "month"},
		"MissingStart":  {UserID: suite.userID, Period: "day"},
		"OffsetOutside": {UserID: suite.userID, StartDate: suite.start, Period: "day",
			PerDayRecipes: map[int][]inbound.MenuItemInput{1: {{RecipeID: r.ID()}}}},
	}
	for name, cmd := range commands {
		suite.Run(name, func() {
			_, err := suite.orchestrator.CreatePlan(suite.ctx, cmd)
			require.Error(suite.T(), err)
			assert.Equal(suite.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
		})
	}

	plans, err := suite.fx.Plans.FindByUser(suite.ctx, suite.userID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), plans)
}

func (suite *OrchestratorTestSuite) TestPlannedCancelsOtherSuggestedPlans() {
	// Arrange
	r := suite.fx.AddRecipe(suite.T(), "Chicken Bowl", recipe.CategoryMain, 650)
	content := map[int][]inbound.MenuItemInput{0: {{RecipeID: r.ID()}}}
	keep := suite.createPlan(inbound.CreatePlanCommand{UserID: suite.userID, StartDate: suite.start, Period: "day", PerDayRecipes: content})
	other := suite.createPlan(inbound.CreatePlanCommand{UserID: suite.userID, StartDate: shared.AddDays(suite.start, 30), Period: "day", PerDayRecipes: content})
	manual := suite.createPlan(inbound.CreatePlanCommand{UserID: suite.userID, StartDate: shared.AddDays(suite.start, 60), Period: "day"})
	suite.metrics.On("PlanTransition", "suggested", "planned").Once()
	suite.metrics.On("PlansCancelled", int64(1)).Once()

	// Act
	got, err := suite.orchestrator.UpdatePlanStatus(suite.ctx, inbound.UpdatePlanStatusCommand{
		UserID: suite.userID, PlanID: keep.ID, Status: "planned",
	})

	// Assert
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), string(plan.StatusPlanned), got.Status)

	stored, err := suite.fx.Plans.FindByID(suite.ctx, other.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), plan.StatusCancelled, stored.Status())
	untouched, err := suite.fx.Plans.FindByID(suite.ctx, manual.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), plan.StatusPlanned, untouched.Status())
	suite.metrics.AssertExpectations(suite.T())
}

func (suite *OrchestratorTestSuite) TestTerminalPlansRejectTransitions() {
	p := suite.createPlan(inbound.CreatePlanCommand{UserID: suite.userID, StartDate: suite.start, Period: "day"})
	suite.metrics.On("PlanTransition", "planned", "completed").Once()

	_, err := suite.orchestrator.UpdatePlanStatus(suite.ctx, inbound.UpdatePlanStatusCommand{UserID: suite.userID, PlanID: p.ID, Status: "completed"})
	require.NoError(suite.T(), err)

	_, err = suite.orchestrator.UpdatePlanStatus(suite.ctx, inbound.UpdatePlanStatusCommand{UserID: suite.userID, PlanID: p.ID, Status: "planned"})
	require.Error(suite.T(), err)
	assert.Equal(suite.T(), apperrors.CodeResourceState, apperrors.GetCode(err))

	_, err = suite.orchestrator.UpdatePlanStatus(suite.ctx, inbound.UpdatePlanStatusCommand{UserID: suite.userID, PlanID: p.ID, Status: "finished"})
	assert.Equal(suite.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
	suite.metrics.AssertExpectations(suite.T())
}

func (suite *OrchestratorTestSuite) TestDeleteOnlyWhileSuggested() {
	r := suite.fx.AddRecipe(suite.T(), "Chicken Bowl", recipe.CategoryMain, 650)
	suggested := suite.createPlan(inbound.CreatePlanCommand{
		UserID: suite.userID, StartDate: suite.start, Period: "day",
		PerDayRecipes: map[int][]inbound.MenuItemInput{0: {{RecipeID: r.ID()}}},
	})
	planned := suite.createPlan(inbound.CreatePlanCommand{UserID: suite.userID, StartDate: shared.AddDays(suite.start, 7), Period: "day"})

	err := suite.orchestrator.DeletePlan(suite.ctx, suite.userID, planned.ID)
	assert.Equal(suite.T(), apperrors.CodeResourceState, apperrors.GetCode(err))

	err = suite.orchestrator.DeletePlan(suite.ctx, uuid.New(), suggested.ID)
	assert.Equal(suite.T(), apperrors.CodePlanNotFound, apperrors.GetCode(err))

	require.NoError(suite.T(), suite.orchestrator.DeletePlan(suite.ctx, suite.userID, suggested.ID))
	_, err = suite.orchestrator.GetPlan(suite.ctx, suite.userID, suggested.ID)
	assert.Equal(suite.T(), apperrors.CodePlanNotFound, apperrors.GetCode(err))
}

func (suite *OrchestratorTestSuite) TestListPlansNewestFirst() {
	first := suite.createPlan(inbound.CreatePlanCommand{UserID: suite.userID, StartDate: suite.start, Period: "day"})
	time.Sleep(2 * time.Millisecond)
	second := suite.createPlan(inbound.CreatePlanCommand{UserID: suite.userID, StartDate: shared.AddDays(suite.start, 1), Period: "day"})
	suite.createPlan(inbound.CreatePlanCommand{UserID: uuid.New(), StartDate: suite.start, Period: "day"})

	got, err := suite.orchestrator.ListPlans(suite.ctx, suite.userID)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), got, 2)
	assert.Equal(suite.T(), second.ID, got[0].ID)
	assert.Equal(suite.T(), first.ID, got[1].ID)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
