package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/plan"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *Store
	menus *DailyMenuRepository
	plans *MealPlanRepository
	uow   *UnitOfWork
	user  uuid.UUID
	day   time.Time
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewStore()
	s.menus = NewDailyMenuRepository(s.store)
	s.plans = NewMealPlanRepository(s.store)
	s.uow = NewUnitOfWork(s.store)
	s.user = uuid.New()
	s.day = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
}

func (s *StoreTestSuite) suggested(day time.Time) *menu.DailyMenu {
	m, err := menu.NewSuggestedMenu(s.user, day, nil, nutrition.Nutrients{})
	s.Require().NoError(err)
	s.Require().NoError(s.menus.Create(s.ctx, m))
	return m
}

func (s *StoreTestSuite) TestCreate_OneLiveMenuPerDay() {
	s.suggested(s.day)

	second, err := menu.NewSelectedMenu(s.user, s.day, nil, nutrition.Nutrients{})
	s.Require().NoError(err)
	s.ErrorIs(s.menus.Create(s.ctx, second), outbound.ErrDuplicate)

	other, err := menu.NewSelectedMenu(uuid.New(), s.day, nil, nutrition.Nutrients{})
	s.Require().NoError(err)
	s.NoError(s.menus.Create(s.ctx, other))
}

func (s *StoreTestSuite) TestFork_ArchivedOriginalIsFrozen() {
	original := s.suggested(s.day)

	clone, err := original.Fork()
	s.Require().NoError(err)
	s.Require().NoError(s.menus.Save(s.ctx, original))
	s.Require().NoError(s.menus.Create(s.ctx, clone))

	live, err := s.menus.FindByUserAndDate(s.ctx, s.user, s.day)
	s.Require().NoError(err)
	s.Equal(clone.ID(), live.ID())
	s.Equal(menu.StatusEdited, live.Status())

	s.ErrorIs(s.menus.Save(s.ctx, original), outbound.ErrArchivedWrite)

	listed, err := s.menus.FindByUserAndDateRange(s.ctx, s.user, s.day, s.day, nil)
	s.Require().NoError(err)
	s.Len(listed, 1)

	archived := menu.StatusArchived
	listed, err = s.menus.FindByUserAndDateRange(s.ctx, s.user, s.day, s.day, &archived)
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal(original.ID(), listed[0].ID())
}

func (s *StoreTestSuite) TestFindByUserAndDateRange_OrderedByDate() {
	s.suggested(s.day.AddDate(0, 0, 2))
	s.suggested(s.day)
	s.suggested(s.day.AddDate(0, 0, 9))

	listed, err := s.menus.FindByUserAndDateRange(s.ctx, s.user, s.day, s.day.AddDate(0, 0, 6), nil)
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	s.True(listed[0].Date().Before(listed[1].Date()))
}

func (s *StoreTestSuite) TestUnitOfWork_RollsBackOnError() {
	boom := errors.New("boom")
	var created uuid.UUID

	err := s.uow.Do(s.ctx, func(ctx context.Context, repos outbound.Repositories) error {
		m, err := menu.NewSelectedMenu(s.user, s.day, nil, nutrition.Nutrients{})
		if err != nil {
			return err
		}
		created = m.ID()
		if err := repos.Menus.Create(ctx, m); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.menus.FindByID(s.ctx, created)
	s.ErrorIs(err, outbound.ErrNotFound)
}

func (s *StoreTestSuite) TestUnitOfWork_Commits() {
	err := s.uow.Do(s.ctx, func(ctx context.Context, repos outbound.Repositories) error {
		m, err := menu.NewSelectedMenu(s.user, s.day, nil, nutrition.Nutrients{})
		if err != nil {
			return err
		}
		return repos.Menus.Create(ctx, m)
	})
	s.Require().NoError(err)

	_, err = s.menus.FindByUserAndDate(s.ctx, s.user, s.day)
	s.NoError(err)
}

func (s *StoreTestSuite) TestPlans_CancelAndDelete() {
	keep, err := plan.NewMealPlan(s.user, s.day, plan.PeriodWeek, []uuid.UUID{uuid.New()}, true)
	s.Require().NoError(err)
	other, err := plan.NewMealPlan(s.user, s.day, plan.PeriodDay, []uuid.UUID{uuid.New()}, true)
	s.Require().NoError(err)
	s.Require().NoError(s.plans.Create(s.ctx, keep))
	s.Require().NoError(s.plans.Create(s.ctx, other))

	n, err := s.plans.CancelAllSuggestedExcept(s.ctx, s.user, keep.ID())
	s.Require().NoError(err)
	s.EqualValues(1, n)

	stored, err := s.plans.FindByID(s.ctx, other.ID())
	s.Require().NoError(err)
	s.Equal(plan.StatusCancelled, stored.Status())

	deleted, err := s.plans.DeleteIfSuggested(s.ctx, s.user, other.ID())
	s.Require().NoError(err)
	s.False(deleted)

	deleted, err = s.plans.DeleteIfSuggested(s.ctx, uuid.New(), keep.ID())
	s.Require().NoError(err)
	s.False(deleted)

	deleted, err = s.plans.DeleteIfSuggested(s.ctx, s.user, keep.ID())
	s.Require().NoError(err)
	s.True(deleted)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestCacheRepository_ExpiresAndDeletesByPrefix(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheRepository(0)
	defer cache.Close()

	require.NoError(t, cache.Set(ctx, "candidates:main", []byte("a"), time.Minute))
	require.NoError(t, cache.Set(ctx, "candidates:side", []byte("b"), time.Minute))
	require.NoError(t, cache.Set(ctx, "profile:1", []byte("c"), time.Minute))
	require.NoError(t, cache.Set(ctx, "short", []byte("d"), time.Nanosecond))

	time.Sleep(5 * time.Millisecond)
	_, err := cache.Get(ctx, "short")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)

	require.NoError(t, cache.DeletePrefix(ctx, "candidates:"))
	_, err = cache.Get(ctx, "candidates:main")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)

	v, err := cache.Get(ctx, "profile:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), v)
}
