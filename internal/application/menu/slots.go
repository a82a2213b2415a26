package menu

import (
	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/recipe"
)

// Slot is a meal the suggestion engine fills with one recipe
type Slot struct {
	ServingTime menu.ServingTime
	Weight      float64
	Categories  []recipe.Category
}

// SlotWeights are the shares of the daily calorie target per meal.
// They need not sum to 1 and the unallocated share is not redistributed.
type SlotWeights struct {
	Breakfast float64
	Lunch     float64
	Dinner    float64
}

// DefaultSlotWeights returns the stock 25/35/30 split
func DefaultSlotWeights() SlotWeights {
	return SlotWeights{Breakfast: 0.25, Lunch: 0.35, Dinner: 0.30}
}

// Slots returns the meal slots in fill order
func (w SlotWeights) Slots() []Slot {
	return []Slot{
		{ServingTime: menu.ServingBreakfast, Weight: w.Breakfast, Categories: []recipe.Category{recipe.CategoryMain, recipe.CategoryDrink}},
		{ServingTime: menu.ServingLunch, Weight: w.Lunch, Categories: []recipe.Category{recipe.CategoryMain, recipe.CategorySide}},
		{ServingTime: menu.ServingDinner, Weight: w.Dinner, Categories: []recipe.Category{recipe.CategoryMain, recipe.CategorySide}},
	}
}
