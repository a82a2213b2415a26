package nutrition

import "errors"

var (
	ErrNegativeNutrient = errors.New("nutrient values must be non-negative")
	ErrInvalidPeriod    = errors.New("invalid goal period")
	ErrGoalNotFound     = errors.New("nutrition goal not found")
)
