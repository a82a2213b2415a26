package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recipe"
	gormrepo "github.com/nutriplan/v1/internal/infrastructure/persistence/gorm"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

type demoRecipe struct {
	title       string
	category    recipe.Category
	ingredients []string
	nutrients   nutrition.Nutrients
}

var demoCatalogue = []demoRecipe{
	{"Overnight Oats", recipe.CategoryMain, []string{"oats", "milk", "honey", "blueberries"},
		nutrition.Nutrients{Calories: 420, Protein: 15, Fat: 9, Carbs: 70, Fiber: 8, Sugar: 22, Sodium: 120}},
	{"Spinach Omelette", recipe.CategoryMain, []string{"eggs", "spinach", "feta"},
		nutrition.Nutrients{Calories: 350, Protein: 24, Fat: 25, Carbs: 4, Fiber: 2, Sugar: 2, Sodium: 540}},
	{"Chicken Rice Bowl", recipe.CategoryMain, []string{"chicken", "rice", "broccoli", "soy sauce"},
		nutrition.Nutrients{Calories: 640, Protein: 45, Fat: 14, Carbs: 78, Fiber: 5, Sugar: 4, Sodium: 890}},
	{"Baked Salmon", recipe.CategoryMain, []string{"salmon", "lemon", "potatoes"},
		nutrition.Nutrients{Calories: 590, Protein: 38, Fat: 28, Carbs: 42, Fiber: 4, Sugar: 3, Sodium: 410}},
	{"Lentil Curry", recipe.CategoryMain, []string{"lentils", "coconut milk", "tomatoes", "rice"},
		nutrition.Nutrients{Calories: 560, Protein: 22, Fat: 18, Carbs: 76, Fiber: 16, Sugar: 8, Sodium: 620}},
	{"Tomato Soup", recipe.CategorySoup, []string{"tomatoes", "onion", "cream"},
		nutrition.Nutrients{Calories: 210, Protein: 5, Fat: 11, Carbs: 24, Fiber: 4, Sugar: 12, Sodium: 780}},
	{"Greek Salad", recipe.CategorySide, []string{"cucumber", "tomatoes", "feta", "olives"},
		nutrition.Nutrients{Calories: 230, Protein: 7, Fat: 18, Carbs: 10, Fiber: 3, Sugar: 6, Sodium: 690}},
	{"Roasted Vegetables", recipe.CategorySide, []string{"carrots", "zucchini", "olive oil"},
		nutrition.Nutrients{Calories: 180, Protein: 3, Fat: 10, Carbs: 20, Fiber: 6, Sugar: 9, Sodium: 150}},
	{"Green Smoothie", recipe.CategoryDrink, []string{"spinach", "banana", "almond milk"},
		nutrition.Nutrients{Calories: 220, Protein: 5, Fat: 4, Carbs: 42, Fiber: 6, Sugar: 26, Sodium: 160}},
	{"Greek Yogurt Parfait", recipe.CategorySnack, []string{"yogurt", "granola", "strawberries"},
		nutrition.Nutrients{Calories: 280, Protein: 16, Fat: 8, Carbs: 36, Fiber: 3, Sugar: 20, Sodium: 90}},
	{"Dark Chocolate Mousse", recipe.CategoryDessert, []string{"dark chocolate", "eggs", "cream"},
		nutrition.Nutrients{Calories: 330, Protein: 6, Fat: 24, Carbs: 26, Fiber: 3, Sugar: 21, Sodium: 60}},
}

// Seed fills an empty catalogue with demo recipes. It is a no-op once any recipe exists.
func Seed(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&gormrepo.RecipeModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	return SeedRecipes(ctx, gormrepo.NewRecipeRepository(db))
}

// SeedRecipes writes the demo catalogue through repo
func SeedRecipes(ctx context.Context, repo outbound.RecipeRepository) (int, error) {
	for _, d := range demoCatalogue {
		r, err := recipe.NewRecipe(d.title, d.category, d.ingredients, d.nutrients)
		if err != nil {
			return 0, fmt.Errorf("build demo recipe %q: %w", d.title, err)
		}
		if err := repo.Create(ctx, r); err != nil {
			return 0, fmt.Errorf("failed to create demo recipe: %w", err)
		}
	}
	return len(demoCatalogue), nil
}
