package menu

import (
	"errors"

	"github.com/google/uuid"
)

// Domain errors for daily menu operations

var (
	ErrMenuArchived       = errors.New("archived menu cannot be modified")
	ErrNotASuggestion     = errors.New("only AI suggestions are forked on edit")
	ErrItemNotFound       = errors.New("menu item not found")
	ErrDuplicateItem      = errors.New("menu item listed more than once")
	ErrInvalidPortion     = errors.New("portion must be zero or greater")
	ErrInvalidRecipeRef   = errors.New("menu item must reference a recipe")
	ErrInvalidStatus      = errors.New("invalid menu status")
	ErrInvalidItemStatus  = errors.New("invalid menu item status")
	ErrInvalidServingTime = errors.New("invalid serving time")
	ErrFutureConsumption  = errors.New("cannot change consumption of a future menu")
	ErrConsumptionFrozen  = errors.New("menu is outside the editable consumption window")
	ErrMissingMenuOwner   = errors.New("menu must belong to a user")
)

// UnknownItemError names an item ID that is not on the menu being edited
type UnknownItemError struct {
	ID uuid.UUID
}

func (e *UnknownItemError) Error() string { return "menu item not found: " + e.ID.String() }

func (e *UnknownItemError) Unwrap() error { return ErrItemNotFound }
