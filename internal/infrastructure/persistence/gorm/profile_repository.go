package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/user"
)

// ProfileRepository stores diet profiles
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByID finds the profile of a user
func (r *ProfileRepository) FindByID(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	var model ProfileModel
	if err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		return nil, TranslateError(err)
	}
	return ModelToProfile(&model), nil
}

// Save inserts or replaces a profile
func (r *ProfileRepository) Save(ctx context.Context, profile *user.Profile) error {
	model := ProfileToModel(profile)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"age", "gender", "height_cm", "weight_kg", "goal", "banned_ingredients", "updated_at"}),
		}).
		Create(model).Error
	return TranslateError(err)
}

// GoalRepository stores nutrition goals
type GoalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// FindActiveLatest returns the most recently created active goal
func (r *GoalRepository) FindActiveLatest(ctx context.Context, userID uuid.UUID) (*nutrition.Goal, error) {
	var model GoalModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return ModelToGoal(&model), nil
}

// Create records a goal
func (r *GoalRepository) Create(ctx context.Context, goal *nutrition.Goal) error {
	return TranslateError(r.db.WithContext(ctx).Create(GoalToModel(goal)).Error)
}
