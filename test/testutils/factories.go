// Package testutils provides test data factories and doubles shared by package tests
package testutils

import (
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/user"
)

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker: gofakeit.New(seed),
	}
}

// Recipe creates a random valid recipe of the given category
func (f *RecipeFactory) Recipe(category recipe.Category) *recipe.Recipe {
	return NewRecipeBuilder().
		WithTitle(f.title(category)).
		WithCategory(category).
		WithIngredients(f.faker.Vegetable(), f.faker.Fruit()).
		WithNutrition(f.Nutrients()).
		Build()
}

// Nutrients creates a plausible single-serving nutrient vector
func (f *RecipeFactory) Nutrients() nutrition.Nutrients {
	return nutrition.Nutrients{
		Calories: f.faker.Float64Range(80, 900),
		Protein:  f.faker.Float64Range(0, 60),
		Fat:      f.faker.Float64Range(0, 45),
		Carbs:    f.faker.Float64Range(0, 120),
		Fiber:    f.faker.Float64Range(0, 15),
		Sugar:    f.faker.Float64Range(0, 40),
		Sodium:   f.faker.Float64Range(0, 1500),
	}
}

// Profile creates a random valid profile
func (f *RecipeFactory) Profile(banned ...string) *user.Profile {
	p, err := user.NewProfile(
		uuid.New(),
		f.faker.Number(18, 80),
		user.GenderOther,
		f.faker.Float64Range(150, 200),
		f.faker.Float64Range(45, 120),
		"maintain weight",
		banned,
	)
	if err != nil {
		panic(err)
	}
	return p
}

func (f *RecipeFactory) title(category recipe.Category) string {
	var name string
	switch category {
	case recipe.CategoryDrink:
		name = f.faker.Drink()
	case recipe.CategoryDessert:
		name = f.faker.Dessert()
	case recipe.CategorySnack:
		name = f.faker.Snack()
	case recipe.CategorySide:
		name = f.faker.Vegetable() + " side"
	default:
		name = f.faker.Dinner()
	}
	if len(name) < 3 {
		name += " dish"
	}
	return name
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	title       string
	category    recipe.Category
	ingredients []string
	nutrients   nutrition.Nutrients
}

// NewRecipeBuilder creates a builder with sensible defaults
func NewRecipeBuilder() *RecipeBuilder {
	return &RecipeBuilder{
		title:    "Test Recipe",
		category: recipe.CategoryMain,
	}
}

func (rb *RecipeBuilder) WithTitle(title string) *RecipeBuilder {
	rb.title = title
	return rb
}

func (rb *RecipeBuilder) WithCategory(category recipe.Category) *RecipeBuilder {
	rb.category = category
	return rb
}

func (rb *RecipeBuilder) WithIngredients(names ...string) *RecipeBuilder {
	rb.ingredients = append(rb.ingredients, names...)
	return rb
}

func (rb *RecipeBuilder) WithNutrition(n nutrition.Nutrients) *RecipeBuilder {
	rb.nutrients = n
	return rb
}

func (rb *RecipeBuilder) WithCalories(calories float64) *RecipeBuilder {
	rb.nutrients.Calories = calories
	return rb
}

// Build creates the recipe, panicking on invalid builder input
func (rb *RecipeBuilder) Build() *recipe.Recipe {
	r, err := recipe.NewRecipe(rb.title, rb.category, rb.ingredients, rb.nutrients)
	if err != nil {
		panic(err)
	}
	r.Events()
	return r
}
