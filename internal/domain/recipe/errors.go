package recipe

import "errors"

// Domain errors for recipe operations

var (
	ErrTitleTooShort    = errors.New("recipe title must be at least 3 characters")
	ErrTitleTooLong     = errors.New("recipe title must not exceed 200 characters")
	ErrInvalidCategory  = errors.New("invalid recipe category")
	ErrInvalidNutrition = errors.New("recipe nutrition must be non-negative")
	ErrRecipeNotFound   = errors.New("recipe not found")
)
