package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/nutriplan/v1/internal/ports/outbound"
)

// UnitOfWork runs planner writes inside one database transaction
type UnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a transaction runner over db
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do binds menu and plan repositories to a transaction. GORM commits when
// fn returns nil and rolls back on error or panic.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos outbound.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, outbound.Repositories{
			Menus: NewDailyMenuRepository(tx),
			Plans: NewMealPlanRepository(tx),
		})
	})
}

var (
	_ outbound.RecipeRepository        = (*RecipeRepository)(nil)
	_ outbound.UserProfileRepository   = (*ProfileRepository)(nil)
	_ outbound.NutritionGoalRepository = (*GoalRepository)(nil)
	_ outbound.DailyMenuRepository     = (*DailyMenuRepository)(nil)
	_ outbound.MealPlanRepository      = (*MealPlanRepository)(nil)
	_ outbound.UnitOfWork              = (*UnitOfWork)(nil)
)
