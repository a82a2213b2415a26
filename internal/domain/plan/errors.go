package plan

import "errors"

var (
	ErrInvalidStatus    = errors.New("invalid meal plan status")
	ErrInvalidPeriod    = errors.New("invalid meal plan period")
	ErrTerminalStatus   = errors.New("meal plan is completed or cancelled")
	ErrNotDeletable     = errors.New("only suggested meal plans can be deleted")
	ErrMissingPlanOwner = errors.New("meal plan must belong to a user")
	ErrNoMenus          = errors.New("meal plan must reference at least one daily menu")
)
