package menu

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/shared"
)

// DailyMenuTestSuite covers the daily menu aggregate and its edit transitions
type DailyMenuTestSuite struct {
	suite.Suite
	userID uuid.UUID
	date   time.Time
}

func (suite *DailyMenuTestSuite) SetupTest() {
	suite.userID = uuid.New()
	suite.date = time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC)
}

func (suite *DailyMenuTestSuite) item(st ServingTime) Item {
	it, err := NewItem(uuid.New(), nil, "", st)
	require.NoError(suite.T(), err)
	return it
}

func (suite *DailyMenuTestSuite) suggestion() *DailyMenu {
	m, err := NewSuggestedMenu(suite.userID, suite.date,
		[]Item{suite.item(ServingBreakfast), suite.item(ServingLunch)},
		nutrition.Nutrients{Calories: 1200})
	require.NoError(suite.T(), err)
	m.Events()
	return m
}

func (suite *DailyMenuTestSuite) TestConstructors() {
	suite.Run("SelectedMenu_ShouldBeUserAuthored", func() {
		m, err := NewSelectedMenu(suite.userID, suite.date, []Item{suite.item(ServingDinner)}, nutrition.Nutrients{Calories: 640})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), StatusSelected, m.Status())
		assert.Equal(suite.T(), shared.SourceUser, m.Source())
		assert.Equal(suite.T(), time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), m.Date())
		assert.Len(suite.T(), m.Items(), 1)

		events := m.Events()
		require.Len(suite.T(), events, 1)
		assert.IsType(suite.T(), MenuCreatedEvent{}, events[0])
	})

	suite.Run("SuggestedMenu_ShouldBeAIAuthored", func() {
		m := suite.suggestion()

		assert.Equal(suite.T(), StatusSuggested, m.Status())
		assert.Equal(suite.T(), shared.SourceAI, m.Source())
		assert.True(suite.T(), m.RequiresCloneOnEdit())
	})

	suite.Run("PlannedMenu_ShouldBeEmpty", func() {
		m, err := NewPlannedMenu(suite.userID, suite.date)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), StatusPlanned, m.Status())
		assert.Empty(suite.T(), m.Items())
		assert.True(suite.T(), m.TotalNutrition().IsZero())
	})

	suite.Run("MissingOwner_ShouldFail", func() {
		_, err := NewPlannedMenu(uuid.Nil, suite.date)

		assert.ErrorIs(suite.T(), err, ErrMissingMenuOwner)
	})
}

func (suite *DailyMenuTestSuite) TestDuplicate() {
	original := suite.suggestion()
	require.NoError(suite.T(), original.SetFeedback("too much rice"))

	clone := Duplicate(original)

	assert.NotEqual(suite.T(), original.ID(), clone.ID())
	assert.Equal(suite.T(), original.Items(), clone.Items())
	assert.Equal(suite.T(), original.TotalNutrition(), clone.TotalNutrition())
	assert.Equal(suite.T(), original.Status(), clone.Status())
	assert.Equal(suite.T(), original.Feedback(), clone.Feedback())
	assert.Equal(suite.T(), original.Date(), clone.Date())
}

func (suite *DailyMenuTestSuite) TestFork() {
	suite.Run("Suggestion_ShouldArchiveOriginalAndReturnEditedClone", func() {
		original := suite.suggestion()

		clone, err := original.Fork()

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), StatusArchived, original.Status())
		assert.Equal(suite.T(), StatusEdited, clone.Status())
		require.NotNil(suite.T(), clone.OriginalMenuID())
		assert.Equal(suite.T(), original.ID(), *clone.OriginalMenuID())
		assert.Equal(suite.T(), original.Items(), clone.Items())

		events := clone.Events()
		require.Len(suite.T(), events, 1)
		assert.IsType(suite.T(), MenuForkedEvent{}, events[0])
	})

	suite.Run("UserMenu_ShouldNotFork", func() {
		m, err := NewSelectedMenu(suite.userID, suite.date, nil, nutrition.Nutrients{})
		require.NoError(suite.T(), err)

		_, err = m.Fork()

		assert.ErrorIs(suite.T(), err, ErrNotASuggestion)
	})
}

func (suite *DailyMenuTestSuite) TestArchivedMenuIsFrozen() {
	m := suite.suggestion()
	require.NoError(suite.T(), m.Archive())

	assert.ErrorIs(suite.T(), m.Archive(), ErrMenuArchived)
	assert.ErrorIs(suite.T(), m.ReplaceItems(nil, nutrition.Nutrients{}), ErrMenuArchived)
	assert.ErrorIs(suite.T(), m.MarkEdited(), ErrMenuArchived)
	assert.ErrorIs(suite.T(), m.SetFeedback("x"), ErrMenuArchived)
	assert.ErrorIs(suite.T(), m.OverwriteWithSuggestion(nil, nutrition.Nutrients{}), ErrMenuArchived)
	assert.ErrorIs(suite.T(), m.SetItemStatus(m.Items()[0].ID, ItemEaten), ErrMenuArchived)
	assert.False(suite.T(), m.RequiresCloneOnEdit())
}

func (suite *DailyMenuTestSuite) TestSetItemStatus() {
	m := suite.suggestion()
	target := m.Items()[1]
	totals := m.TotalNutrition()

	require.NoError(suite.T(), m.SetItemStatus(target.ID, ItemEaten))

	got, ok := m.FindItem(target.ID)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), ItemEaten, got.Status)
	assert.Equal(suite.T(), totals, m.TotalNutrition())
	assert.Equal(suite.T(), StatusSuggested, m.Status())

	assert.ErrorIs(suite.T(), m.SetItemStatus(uuid.New(), ItemEaten), ErrItemNotFound)
	assert.ErrorIs(suite.T(), m.SetItemStatus(target.ID, ItemStatus("gone")), ErrInvalidItemStatus)
}

func (suite *DailyMenuTestSuite) TestOverwriteWithSuggestion_KeepsIdentity() {
	m, err := NewSelectedMenu(suite.userID, suite.date, nil, nutrition.Nutrients{})
	require.NoError(suite.T(), err)
	id := m.ID()

	require.NoError(suite.T(), m.OverwriteWithSuggestion([]Item{suite.item(ServingLunch)}, nutrition.Nutrients{Calories: 700}))

	assert.Equal(suite.T(), id, m.ID())
	assert.Equal(suite.T(), StatusSuggested, m.Status())
	assert.Equal(suite.T(), shared.SourceAI, m.Source())
	assert.Equal(suite.T(), 700.0, m.TotalNutrition().Calories)
}

func (suite *DailyMenuTestSuite) TestRestoreSnapshotRoundTrip() {
	m := suite.suggestion()
	clone, err := m.Fork()
	require.NoError(suite.T(), err)

	restored := Restore(clone.Snapshot())

	assert.Equal(suite.T(), clone.Snapshot(), restored.Snapshot())
}

func TestDailyMenuTestSuite(t *testing.T) {
	suite.Run(t, new(DailyMenuTestSuite))
}

func TestNewItem(t *testing.T) {
	recipeID := uuid.New()

	t.Run("AbsentPortion_ShouldDefaultToOne", func(t *testing.T) {
		it, err := NewItem(recipeID, nil, "", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultPortion, it.Portion)
		assert.Equal(t, ServingOther, it.ServingTime)
		assert.Equal(t, ItemPlanned, it.Status)
	})

	t.Run("ZeroPortion_ShouldBeKept", func(t *testing.T) {
		zero := 0.0
		it, err := NewItem(recipeID, &zero, "", ServingLunch)
		require.NoError(t, err)
		assert.Equal(t, 0.0, it.Portion)
	})

	t.Run("NegativePortion_ShouldFail", func(t *testing.T) {
		neg := -0.5
		_, err := NewItem(recipeID, &neg, "", ServingLunch)
		assert.ErrorIs(t, err, ErrInvalidPortion)
	})

	t.Run("NilRecipe_ShouldFail", func(t *testing.T) {
		_, err := NewItem(uuid.Nil, nil, "", ServingLunch)
		assert.ErrorIs(t, err, ErrInvalidRecipeRef)
	})

	t.Run("UnknownServingTime_ShouldFail", func(t *testing.T) {
		_, err := NewItem(recipeID, nil, "", ServingTime("brunch"))
		assert.ErrorIs(t, err, ErrInvalidServingTime)
	})
}

func TestParseEnums(t *testing.T) {
	_, err := ParseStatus("archived")
	assert.NoError(t, err)
	_, err = ParseStatus("archived_suggestion")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseItemStatus("eaten")
	assert.NoError(t, err)
	_, err = ParseItemStatus("skipped")
	assert.ErrorIs(t, err, ErrInvalidItemStatus)

	st, err := ParseServingTime("")
	require.NoError(t, err)
	assert.Equal(t, ServingOther, st)
}
