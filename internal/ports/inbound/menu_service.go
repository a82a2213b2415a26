// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the planner exposes to HTTP handlers and other drivers
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/nutrition"
)

// MenuService defines the use cases for daily menus
type MenuService interface {
	// Commands
	SuggestDailyMenu(ctx context.Context, cmd SuggestMenuCommand) (*DailyMenuDTO, error)
	CreateOrUpdateDailyMenu(ctx context.Context, cmd CreateOrUpdateMenuCommand) (*DailyMenuDTO, error)
	AddRecipeToMenu(ctx context.Context, cmd AddRecipeCommand) (*DailyMenuDTO, error)
	SetItemStatus(ctx context.Context, cmd SetItemStatusCommand) (*DailyMenuDTO, error)
	EditMenu(ctx context.Context, cmd EditMenuCommand) (*DailyMenuDTO, error)
	SubmitFeedback(ctx context.Context, cmd SubmitFeedbackCommand) (*DailyMenuDTO, error)

	// Queries
	GetMenu(ctx context.Context, userID, menuID uuid.UUID) (*DailyMenuDTO, error)
	ListMenus(ctx context.Context, query ListMenusQuery) ([]*DailyMenuDTO, error)
}

// MenuItemInput describes one recipe to place on a menu.
// A nil Portion means one serving. ID refers to an item already on the
// menu being edited; leave it nil for a new item.
type MenuItemInput struct {
	ID          *uuid.UUID
	RecipeID    uuid.UUID
	Portion     *float64
	Note        string
	ServingTime string
}

// SuggestMenuCommand asks for a generated menu for one date
type SuggestMenuCommand struct {
	UserID uuid.UUID
	Date   time.Time
}

// CreateOrUpdateMenuCommand sets the full item list of a date's menu
type CreateOrUpdateMenuCommand struct {
	UserID uuid.UUID
	Date   time.Time
	Items  []MenuItemInput
}

// AddRecipeCommand appends one recipe to a date's menu
type AddRecipeCommand struct {
	UserID uuid.UUID
	Date   time.Time
	Item   MenuItemInput
}

// SetItemStatusCommand marks an item planned, eaten or deleted
type SetItemStatusCommand struct {
	UserID uuid.UUID
	MenuID uuid.UUID
	ItemID uuid.UUID
	Status string
}

// EditMenuCommand changes a menu's items, feedback, or both
type EditMenuCommand struct {
	UserID   uuid.UUID
	MenuID   uuid.UUID
	Items    *[]MenuItemInput
	Feedback *string
}

// SubmitFeedbackCommand stores free-text feedback on a menu
type SubmitFeedbackCommand struct {
	UserID   uuid.UUID
	MenuID   uuid.UUID
	Feedback string
}

// ListMenusQuery selects menus in an inclusive date range
type ListMenusQuery struct {
	UserID uuid.UUID
	Start  time.Time
	End    time.Time
	Status *string
}

// DailyMenuDTO is the transport form of a daily menu
type DailyMenuDTO struct {
	ID             uuid.UUID           `json:"id"`
	UserID         uuid.UUID           `json:"user_id"`
	Date           string              `json:"date"`
	Items          []MenuItemDTO       `json:"items"`
	TotalNutrition nutrition.Nutrients `json:"total_nutrition"`
	Status         string              `json:"status"`
	Source         string              `json:"source"`
	OriginalMenuID *uuid.UUID          `json:"original_menu_id,omitempty"`
	Feedback       string              `json:"feedback,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// MenuItemDTO is the transport form of a menu item
type MenuItemDTO struct {
	ID          uuid.UUID `json:"id"`
	RecipeID    uuid.UUID `json:"recipe_id"`
	Portion     float64   `json:"portion"`
	Note        string    `json:"note,omitempty"`
	ServingTime string    `json:"serving_time"`
	Status      string    `json:"status"`
}
