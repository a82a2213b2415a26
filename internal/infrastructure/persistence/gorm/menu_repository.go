package gorm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// DailyMenuRepository implements the daily menu repository interface using GORM
type DailyMenuRepository struct {
	db *gorm.DB
}

// NewDailyMenuRepository creates a new daily menu repository
func NewDailyMenuRepository(db *gorm.DB) *DailyMenuRepository {
	return &DailyMenuRepository{db: db}
}

// Create inserts a menu. The partial unique index on (user_id, date)
// rejects a second live menu for the same day.
func (r *DailyMenuRepository) Create(ctx context.Context, m *menu.DailyMenu) error {
	if err := r.db.WithContext(ctx).Create(DailyMenuToModel(m)).Error; err != nil {
		return TranslateError(err)
	}
	return nil
}

// Save rewrites every column of a stored menu unless the stored row is archived
func (r *DailyMenuRepository) Save(ctx context.Context, m *menu.DailyMenu) error {
	model := DailyMenuToModel(m)

	result := r.db.WithContext(ctx).
		Model(&DailyMenuModel{}).
		Where("id = ? AND status <> ?", model.ID, string(menu.StatusArchived)).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return TranslateError(result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&DailyMenuModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
		return TranslateError(err)
	}
	if count == 0 {
		return outbound.ErrNotFound
	}
	return outbound.ErrArchivedWrite
}

// FindByID finds a menu by ID, archived or not
func (r *DailyMenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.DailyMenu, error) {
	var model DailyMenuModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, TranslateError(err)
	}
	return ModelToDailyMenu(&model), nil
}

// FindByUserAndDate returns the live menu for a user and date
func (r *DailyMenuRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*menu.DailyMenu, error) {
	var model DailyMenuModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND status <> ?", userID, formatDay(date), string(menu.StatusArchived)).
		First(&model).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return ModelToDailyMenu(&model), nil
}

// FindByUserAndDateRange lists menus in [start, end] ordered by date
func (r *DailyMenuRepository) FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time, status *menu.Status) ([]*menu.DailyMenu, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, formatDay(start), formatDay(end))
	if status != nil {
		query = query.Where("status = ?", string(*status))
	} else {
		query = query.Where("status <> ?", string(menu.StatusArchived))
	}

	var models []DailyMenuModel
	if err := query.Order("date ASC").Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list menus: %w", TranslateError(err))
	}

	out := make([]*menu.DailyMenu, 0, len(models))
	for i := range models {
		out = append(out, ModelToDailyMenu(&models[i]))
	}
	return out, nil
}
