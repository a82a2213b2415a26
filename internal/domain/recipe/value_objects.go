package recipe

import "strings"

// Category classifies a recipe by the kind of dish it produces
type Category string

const (
	CategoryMain    Category = "main"
	CategorySide    Category = "side"
	CategoryDrink   Category = "drink"
	CategoryDessert Category = "dessert"
	CategorySnack   Category = "snack"
	CategorySoup    Category = "soup"
	CategoryOther   Category = "other"
)

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryMain, CategorySide, CategoryDrink, CategoryDessert,
		CategorySnack, CategorySoup, CategoryOther:
		return true
	}
	return false
}

// AllCategories lists every category
func AllCategories() []Category {
	return []Category{CategoryMain, CategorySide, CategoryDrink, CategoryDessert, CategorySnack, CategorySoup, CategoryOther}
}

// ParseCategory converts a raw string into a Category
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// NormalizeIngredient lower-cases and trims an ingredient name for comparison
func NormalizeIngredient(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
