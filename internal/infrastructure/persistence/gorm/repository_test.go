package gorm

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/plan"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/user"
	"github.com/nutriplan/v1/internal/infrastructure/persistence/migrations"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/test/testutils"
)

type RepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	db      *gorm.DB
	recipes *RecipeRepository
	menus   *DailyMenuRepository
	plans   *MealPlanRepository
	uow     *UnitOfWork
	userID  uuid.UUID
	day     time.Time
}

func (s *RepositoryTestSuite) SetupTest() {
	path := filepath.Join(s.T().TempDir(), "planner.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(AllModels()...))
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	s.Require().NoError(migrations.Up(sqlDB, "sqlite", zap.NewNop()))

	s.ctx = context.Background()
	s.db = db
	s.recipes = NewRecipeRepository(db)
	s.menus = NewDailyMenuRepository(db)
	s.plans = NewMealPlanRepository(db)
	s.uow = NewUnitOfWork(db)
	s.userID = uuid.New()
	s.day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

func (s *RepositoryTestSuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (s *RepositoryTestSuite) addRecipe(title string, category recipe.Category, ingredients ...string) *recipe.Recipe {
	r := testutils.NewRecipeBuilder().
		WithTitle(title).
		WithCategory(category).
		WithIngredients(ingredients...).
		WithNutrition(nutrition.Nutrients{Calories: 400, Protein: 20, Fat: 10, Carbs: 50}).
		Build()
	s.Require().NoError(s.recipes.Create(s.ctx, r))
	return r
}

func (s *RepositoryTestSuite) suggestedMenu(date time.Time, recipes ...*recipe.Recipe) *menu.DailyMenu {
	m, err := menu.NewSuggestedMenu(s.userID, date, testutils.Items(s.T(), menu.ServingLunch, recipes...), nutrition.Nutrients{Calories: 400})
	s.Require().NoError(err)
	s.Require().NoError(s.menus.Create(s.ctx, m))
	return m
}

func (s *RepositoryTestSuite) TestRecipe_FindByCategoryExcluding() {
	s.addRecipe("Salmon Bowl", recipe.CategoryMain, "Salmon", "Rice")
	bowl := s.addRecipe("Chicken Bowl", recipe.CategoryMain, "chicken", "rice")
	s.addRecipe("Green Salad", recipe.CategorySide, "lettuce")

	got, err := s.recipes.FindByCategoryExcluding(s.ctx, []recipe.Category{recipe.CategoryMain}, []string{"salmon"})

	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(bowl.ID(), got[0].ID())
	s.Equal([]string{"chicken", "rice"}, got[0].IngredientNames())
	s.Equal(400.0, got[0].Calories())
}

func (s *RepositoryTestSuite) TestRecipe_FindByCategoryExcluding_OrdersByTitle() {
	s.addRecipe("Zucchini Pasta", recipe.CategoryMain)
	s.addRecipe("Apple Oats", recipe.CategoryMain)

	got, err := s.recipes.FindByCategoryExcluding(s.ctx, []recipe.Category{recipe.CategoryMain}, nil)

	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("Apple Oats", got[0].Title())
	s.Equal("Zucchini Pasta", got[1].Title())
}

func (s *RepositoryTestSuite) TestRecipe_FindByIDsSkipsUnknown() {
	r := s.addRecipe("Porridge", recipe.CategoryMain, "oats")

	got, err := s.recipes.FindByIDs(s.ctx, []uuid.UUID{r.ID(), uuid.New()})

	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(r.ID(), got[0].ID())

	_, err = s.recipes.FindByID(s.ctx, uuid.New())
	s.ErrorIs(err, outbound.ErrNotFound)
}

func (s *RepositoryTestSuite) TestMenu_RoundTrip() {
	r := s.addRecipe("Porridge", recipe.CategoryMain, "oats")
	created := s.suggestedMenu(s.day, r)

	got, err := s.menus.FindByUserAndDate(s.ctx, s.userID, s.day.Add(15*time.Hour))

	s.Require().NoError(err)
	s.Equal(created.ID(), got.ID())
	s.True(got.Date().Equal(s.day))
	s.Equal(menu.StatusSuggested, got.Status())
	s.Require().Len(got.Items(), 1)
	s.Equal(r.ID(), got.Items()[0].RecipeID)
	s.Equal(menu.ServingLunch, got.Items()[0].ServingTime)
	s.Equal(400.0, got.TotalNutrition().Calories)
	s.Nil(got.OriginalMenuID())
}

func (s *RepositoryTestSuite) TestMenu_SecondLiveMenuIsDuplicate() {
	s.suggestedMenu(s.day)

	other, err := menu.NewPlannedMenu(s.userID, s.day)
	s.Require().NoError(err)

	s.ErrorIs(s.menus.Create(s.ctx, other), outbound.ErrDuplicate)
}

func (s *RepositoryTestSuite) TestMenu_ArchivedMenuFreesTheDate() {
	original := s.suggestedMenu(s.day)
	s.Require().NoError(original.Archive())
	s.Require().NoError(s.menus.Save(s.ctx, original))

	clone, err := menu.NewSelectedMenu(s.userID, s.day, nil, nutrition.Nutrients{})
	s.Require().NoError(err)
	s.Require().NoError(s.menus.Create(s.ctx, clone))

	live, err := s.menus.FindByUserAndDate(s.ctx, s.userID, s.day)
	s.Require().NoError(err)
	s.Equal(clone.ID(), live.ID())

	s.ErrorIs(s.menus.Save(s.ctx, original), outbound.ErrArchivedWrite)
}

func (s *RepositoryTestSuite) TestMenu_SaveUnknownIsNotFound() {
	m, err := menu.NewPlannedMenu(s.userID, s.day)
	s.Require().NoError(err)

	s.ErrorIs(s.menus.Save(s.ctx, m), outbound.ErrNotFound)
}

func (s *RepositoryTestSuite) TestMenu_DateRange() {
	first := s.suggestedMenu(s.day)
	second := s.suggestedMenu(s.day.AddDate(0, 0, 2))
	s.suggestedMenu(s.day.AddDate(0, 0, 10))
	s.Require().NoError(second.MarkEdited())
	s.Require().NoError(s.menus.Save(s.ctx, second))

	all, err := s.menus.FindByUserAndDateRange(s.ctx, s.userID, s.day, s.day.AddDate(0, 0, 6), nil)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(first.ID(), all[0].ID())
	s.Equal(second.ID(), all[1].ID())

	edited := menu.StatusEdited
	filtered, err := s.menus.FindByUserAndDateRange(s.ctx, s.userID, s.day, s.day.AddDate(0, 0, 6), &edited)
	s.Require().NoError(err)
	s.Require().Len(filtered, 1)
	s.Equal(second.ID(), filtered[0].ID())
}

func (s *RepositoryTestSuite) newPlan(aiAuthored bool, menuIDs ...uuid.UUID) *plan.MealPlan {
	p, err := plan.NewMealPlan(s.userID, s.day, plan.PeriodDay, menuIDs, aiAuthored)
	s.Require().NoError(err)
	s.Require().NoError(s.plans.Create(s.ctx, p))
	return p
}

func (s *RepositoryTestSuite) TestPlan_FindByDailyMenuID() {
	menuID := uuid.New()
	p := s.newPlan(true, menuID)
	s.newPlan(true, uuid.New())

	got, err := s.plans.FindByDailyMenuID(s.ctx, menuID)

	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(p.ID(), got[0].ID())
	s.Equal([]uuid.UUID{menuID}, got[0].DailyMenuIDs())
	s.True(got[0].StartDate().Equal(s.day))
}

func (s *RepositoryTestSuite) TestPlan_CancelAllSuggestedExcept() {
	keep := s.newPlan(true, uuid.New())
	other := s.newPlan(true, uuid.New())
	planned := s.newPlan(false, uuid.New())

	n, err := s.plans.CancelAllSuggestedExcept(s.ctx, s.userID, keep.ID())

	s.Require().NoError(err)
	s.Equal(int64(1), n)

	got, err := s.plans.FindByID(s.ctx, other.ID())
	s.Require().NoError(err)
	s.Equal(plan.StatusCancelled, got.Status())

	got, err = s.plans.FindByID(s.ctx, planned.ID())
	s.Require().NoError(err)
	s.Equal(plan.StatusPlanned, got.Status())
}

func (s *RepositoryTestSuite) TestPlan_DeleteIfSuggested() {
	suggested := s.newPlan(true, uuid.New())
	planned := s.newPlan(false, uuid.New())

	ok, err := s.plans.DeleteIfSuggested(s.ctx, s.userID, planned.ID())
	s.Require().NoError(err)
	s.False(ok)

	ok, err = s.plans.DeleteIfSuggested(s.ctx, uuid.New(), suggested.ID())
	s.Require().NoError(err)
	s.False(ok)

	ok, err = s.plans.DeleteIfSuggested(s.ctx, s.userID, suggested.ID())
	s.Require().NoError(err)
	s.True(ok)

	_, err = s.plans.FindByID(s.ctx, suggested.ID())
	s.ErrorIs(err, outbound.ErrNotFound)
}

func (s *RepositoryTestSuite) TestUnitOfWork_RollsBackOnError() {
	original := s.suggestedMenu(s.day)
	boom := errors.New("boom")

	err := s.uow.Do(s.ctx, func(ctx context.Context, repos outbound.Repositories) error {
		if err := original.Archive(); err != nil {
			return err
		}
		if err := repos.Menus.Save(ctx, original); err != nil {
			return err
		}
		clone, err := menu.NewSelectedMenu(s.userID, s.day, nil, nutrition.Nutrients{})
		if err != nil {
			return err
		}
		if err := repos.Menus.Create(ctx, clone); err != nil {
			return err
		}
		return boom
	})

	s.ErrorIs(err, boom)
	live, err := s.menus.FindByUserAndDate(s.ctx, s.userID, s.day)
	s.Require().NoError(err)
	s.Equal(original.ID(), live.ID())
	s.Equal(menu.StatusSuggested, live.Status())
}

func (s *RepositoryTestSuite) TestUnitOfWork_Commits() {
	original := s.suggestedMenu(s.day)
	p := s.newPlan(true, original.ID())

	err := s.uow.Do(s.ctx, func(ctx context.Context, repos outbound.Repositories) error {
		s.Require().NoError(p.TransitionTo(plan.StatusPlanned))
		return repos.Plans.Save(ctx, p)
	})

	s.Require().NoError(err)
	got, err := s.plans.FindByID(s.ctx, p.ID())
	s.Require().NoError(err)
	s.Equal(plan.StatusPlanned, got.Status())
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestProfileAndGoalRepositories(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "profiles.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(AllModels()...))

	ctx := context.Background()
	profiles := NewProfileRepository(db)
	goals := NewGoalRepository(db)
	userID := uuid.New()

	_, err = profiles.FindByID(ctx, userID)
	assert.ErrorIs(t, err, outbound.ErrNotFound)

	p, err := user.NewProfile(userID, 34, user.GenderFemale, 168, 61, "maintain", []string{"Peanut"})
	require.NoError(t, err)
	require.NoError(t, profiles.Save(ctx, p))

	p.WeightKG = 59
	require.NoError(t, profiles.Save(ctx, p))

	got, err := profiles.FindByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 59.0, got.WeightKG)
	assert.Equal(t, []string{"peanut"}, got.BannedIngredients)

	older, err := nutrition.NewGoal(userID, nutrition.Nutrients{Calories: 14000}, nutrition.PeriodWeek, 0)
	require.NoError(t, err)
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, goals.Create(ctx, older))

	newer, err := nutrition.NewGoal(userID, nutrition.Nutrients{Calories: 2100}, nutrition.PeriodDay, 0)
	require.NoError(t, err)
	require.NoError(t, goals.Create(ctx, newer))

	latest, err := goals.FindActiveLatest(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
	assert.Equal(t, 2100.0, latest.Target.Calories)
}
