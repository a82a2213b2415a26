// Package gorm provides GORM models and repositories for the planner's relational store
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NutrientColumns is embedded wherever a nutrient vector is stored
type NutrientColumns struct {
	Calories float64 `gorm:"not null;default:0"`
	Protein  float64 `gorm:"not null;default:0"`
	Fat      float64 `gorm:"not null;default:0"`
	Carbs    float64 `gorm:"not null;default:0"`
	Fiber    float64 `gorm:"not null;default:0"`
	Sugar    float64 `gorm:"not null;default:0"`
	Sodium   float64 `gorm:"not null;default:0"`
}

// RecipeModel represents the recipes table
type RecipeModel struct {
	ID          uuid.UUID       `gorm:"type:char(36);primaryKey"`
	Title       string          `gorm:"size:200;not null;index"`
	Category    string          `gorm:"size:20;not null;index"`
	Ingredients StringSlice     `gorm:"type:text"`
	Nutrition   NutrientColumns `gorm:"embedded;embeddedPrefix:nutrition_"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileModel represents the user_profiles table
type ProfileModel struct {
	UserID            uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Age               int         `gorm:"not null"`
	Gender            string      `gorm:"size:10;not null"`
	HeightCM          float64     `gorm:"column:height_cm;not null"`
	WeightKG          float64     `gorm:"column:weight_kg;not null"`
	Goal              string      `gorm:"size:100"`
	BannedIngredients StringSlice `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// GoalModel represents the nutrition_goals table
type GoalModel struct {
	ID          uuid.UUID       `gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID       `gorm:"type:char(36);not null;index:idx_nutrition_goals_user_active"`
	Target      NutrientColumns `gorm:"embedded;embeddedPrefix:target_"`
	Period      string          `gorm:"size:10;not null"`
	PeriodValue int             `gorm:"not null;default:0"`
	Active      bool            `gorm:"not null;default:true;index:idx_nutrition_goals_user_active"`
	CreatedAt   time.Time       `gorm:"index"`
}

// DailyMenuModel represents the daily_menus table. Dates are stored as
// YYYY-MM-DD strings so equality and range filters behave the same on
// every driver. At most one non-archived row exists per user and date; the
// partial unique index enforcing it is versioned in the migrations package.
type DailyMenuModel struct {
	ID             uuid.UUID       `gorm:"type:char(36);primaryKey"`
	UserID         uuid.UUID       `gorm:"type:char(36);not null;index:idx_daily_menus_user_day"`
	Date           string          `gorm:"size:10;not null;index:idx_daily_menus_user_day;index"`
	Items          MenuItems       `gorm:"type:text"`
	TotalNutrition NutrientColumns `gorm:"embedded;embeddedPrefix:total_"`
	Status         string          `gorm:"size:20;not null;index"`
	Source         string          `gorm:"size:10;not null"`
	OriginalMenuID *uuid.UUID      `gorm:"type:char(36)"`
	Feedback       string          `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MealPlanModel represents the meal_plans table
type MealPlanModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID `gorm:"type:char(36);not null;index"`
	StartDate    string    `gorm:"size:10;not null"`
	EndDate      string    `gorm:"size:10;not null"`
	Period       string    `gorm:"size:10;not null"`
	DailyMenuIDs UUIDSlice `gorm:"type:text"`
	Source       string    `gorm:"size:10;not null"`
	Status       string    `gorm:"size:20;not null;index"`
	Modified     bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

// MenuItemRecord is the JSON form of one menu item
type MenuItemRecord struct {
	ID          uuid.UUID `json:"id"`
	RecipeID    uuid.UUID `json:"recipe_id"`
	Portion     float64   `json:"portion"`
	Note        string    `json:"note,omitempty"`
	ServingTime string    `json:"serving_time"`
	Status      string    `json:"status"`
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	*s = StringSlice{}
	return scanJSON(value, s, "StringSlice")
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	return valueJSON(s, len(s) == 0)
}

// UUIDSlice stores an ordered list of IDs as JSON
type UUIDSlice []uuid.UUID

// Scan implements the sql.Scanner interface
func (u *UUIDSlice) Scan(value interface{}) error {
	*u = UUIDSlice{}
	return scanJSON(value, u, "UUIDSlice")
}

// Value implements the driver.Valuer interface
func (u UUIDSlice) Value() (driver.Value, error) {
	return valueJSON(u, len(u) == 0)
}

// MenuItems stores a menu's items as JSON
type MenuItems []MenuItemRecord

// Scan implements the sql.Scanner interface
func (m *MenuItems) Scan(value interface{}) error {
	*m = MenuItems{}
	return scanJSON(value, m, "MenuItems")
}

// Value implements the driver.Valuer interface
func (m MenuItems) Value() (driver.Value, error) {
	return valueJSON(m, len(m) == 0)
}

func scanJSON(value interface{}, dest interface{}, name string) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("cannot scan %T into %s", value, name)
	}
}

// Values are written as strings so text columns accept them on every driver
func valueJSON(v interface{}, empty bool) (driver.Value, error) {
	if empty {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// BeforeCreate hooks

func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (g *GoalModel) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (m *DailyMenuModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (p *MealPlanModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Table names

func (RecipeModel) TableName() string {
	return "recipes"
}

func (ProfileModel) TableName() string {
	return "user_profiles"
}

func (GoalModel) TableName() string {
	return "nutrition_goals"
}

func (DailyMenuModel) TableName() string {
	return "daily_menus"
}

func (MealPlanModel) TableName() string {
	return "meal_plans"
}

// AllModels lists every model in migration order
func AllModels() []interface{} {
	return []interface{}{
		&RecipeModel{},
		&ProfileModel{},
		&GoalModel{},
		&DailyMenuModel{},
		&MealPlanModel{},
	}
}
