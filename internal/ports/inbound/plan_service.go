package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PlanService defines the use cases for meal plans
type PlanService interface {
	CreatePlan(ctx context.Context, cmd CreatePlanCommand) (*MealPlanDTO, error)
	UpdatePlanStatus(ctx context.Context, cmd UpdatePlanStatusCommand) (*MealPlanDTO, error)
	DeletePlan(ctx context.Context, userID, planID uuid.UUID) error

	GetPlan(ctx context.Context, userID, planID uuid.UUID) (*MealPlanDTO, error)
	ListPlans(ctx context.Context, userID uuid.UUID) ([]*MealPlanDTO, error)
}

// CreatePlanCommand describes a plan for a day or a week.
// PerDayRecipes is keyed by day offset from StartDate; supplied content is
// stored as a suggestion. With UseAI set, days without content are generated.
type CreatePlanCommand struct {
	UserID        uuid.UUID
	StartDate     time.Time
	Period        string
	PerDayRecipes map[int][]MenuItemInput
	UseAI         bool
}

// UpdatePlanStatusCommand moves a plan to a new status
type UpdatePlanStatusCommand struct {
	UserID uuid.UUID
	PlanID uuid.UUID
	Status string
}

// MealPlanDTO is the transport form of a meal plan
type MealPlanDTO struct {
	ID           uuid.UUID   `json:"id"`
	UserID       uuid.UUID   `json:"user_id"`
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	Period       string      `json:"period"`
	DailyMenuIDs []uuid.UUID `json:"daily_menu_ids"`
	Source       string      `json:"source"`
	Status       string      `json:"status"`
	Modified     bool        `json:"modified"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
