package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/nutrition"
)

// ProfileService defines the use cases for a user's diet profile and goals
type ProfileService interface {
	SaveProfile(ctx context.Context, cmd SaveProfileCommand) (*ProfileDTO, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	SetGoal(ctx context.Context, cmd SetGoalCommand) (*GoalDTO, error)
	GetDailyTarget(ctx context.Context, userID uuid.UUID) (nutrition.Nutrients, error)
}

// SaveProfileCommand creates or replaces a user's profile
type SaveProfileCommand struct {
	UserID            uuid.UUID
	Age               int
	Gender            string
	HeightCM          float64
	WeightKG          float64
	Goal              string
	BannedIngredients []string
}

// SetGoalCommand records a new active nutrition goal
type SetGoalCommand struct {
	UserID      uuid.UUID
	Target      nutrition.Nutrients
	Period      string
	PeriodValue int
}

// ProfileDTO is the transport form of a profile
type ProfileDTO struct {
	UserID            uuid.UUID `json:"user_id"`
	Age               int       `json:"age"`
	Gender            string    `json:"gender"`
	HeightCM          float64   `json:"height_cm"`
	WeightKG          float64   `json:"weight_kg"`
	Goal              string    `json:"goal,omitempty"`
	BannedIngredients []string  `json:"banned_ingredients"`
}

// GoalDTO is the transport form of a nutrition goal
type GoalDTO struct {
	ID          uuid.UUID           `json:"id"`
	Target      nutrition.Nutrients `json:"target"`
	DailyTarget nutrition.Nutrients `json:"daily_target"`
	Period      string              `json:"period"`
	PeriodValue int                 `json:"period_value,omitempty"`
	Active      bool                `json:"active"`
	CreatedAt   time.Time           `json:"created_at"`
}
