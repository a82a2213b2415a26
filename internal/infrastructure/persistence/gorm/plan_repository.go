package gorm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutriplan/v1/internal/domain/plan"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// MealPlanRepository implements the meal plan repository interface using GORM
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new meal plan repository
func NewMealPlanRepository(db *gorm.DB) *MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// Create inserts a plan
func (r *MealPlanRepository) Create(ctx context.Context, p *plan.MealPlan) error {
	return TranslateError(r.db.WithContext(ctx).Create(MealPlanToModel(p)).Error)
}

// Save rewrites every column of a stored plan
func (r *MealPlanRepository) Save(ctx context.Context, p *plan.MealPlan) error {
	model := MealPlanToModel(p)

	result := r.db.WithContext(ctx).
		Model(&MealPlanModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

// FindByID finds a plan by ID
func (r *MealPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*plan.MealPlan, error) {
	var model MealPlanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, TranslateError(err)
	}
	return ModelToMealPlan(&model), nil
}

// FindByUser lists a user's plans, newest first
func (r *MealPlanRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*plan.MealPlan, error) {
	var models []MealPlanModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", TranslateError(err))
	}
	return toPlans(models, nil), nil
}

// FindByDailyMenuID lists the plans referencing menuID. The LIKE narrows
// candidates on the JSON column; membership is confirmed after decoding.
func (r *MealPlanRepository) FindByDailyMenuID(ctx context.Context, menuID uuid.UUID) ([]*plan.MealPlan, error) {
	var models []MealPlanModel
	err := r.db.WithContext(ctx).
		Where("daily_menu_ids LIKE ?", "%"+menuID.String()+"%").
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("find plans by menu: %w", TranslateError(err))
	}
	return toPlans(models, func(m *MealPlanModel) bool {
		for _, id := range m.DailyMenuIDs {
			if id == menuID {
				return true
			}
		}
		return false
	}), nil
}

// CancelAllSuggestedExcept cancels the user's other suggested plans in one statement
func (r *MealPlanRepository) CancelAllSuggestedExcept(ctx context.Context, userID, keepID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&MealPlanModel{}).
		Where("user_id = ? AND id <> ? AND status = ?", userID, keepID, string(plan.StatusSuggested)).
		Updates(map[string]interface{}{
			"status":     string(plan.StatusCancelled),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, TranslateError(result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteIfSuggested removes the plan only while it is suggested
func (r *MealPlanRepository) DeleteIfSuggested(ctx context.Context, userID, planID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", planID, userID, string(plan.StatusSuggested)).
		Delete(&MealPlanModel{})
	if result.Error != nil {
		return false, TranslateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func toPlans(models []MealPlanModel, keep func(*MealPlanModel) bool) []*plan.MealPlan {
	out := make([]*plan.MealPlan, 0, len(models))
	for i := range models {
		if keep != nil && !keep(&models[i]) {
			continue
		}
		out = append(out, ModelToMealPlan(&models[i]))
	}
	return out
}
