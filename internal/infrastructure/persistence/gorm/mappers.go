package gorm

import (
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/plan"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/domain/user"
)

func nutrientsToColumns(n nutrition.Nutrients) NutrientColumns {
	return NutrientColumns{
		Calories: n.Calories,
		Protein:  n.Protein,
		Fat:      n.Fat,
		Carbs:    n.Carbs,
		Fiber:    n.Fiber,
		Sugar:    n.Sugar,
		Sodium:   n.Sodium,
	}
}

func columnsToNutrients(c NutrientColumns) nutrition.Nutrients {
	return nutrition.Nutrients{
		Calories: c.Calories,
		Protein:  c.Protein,
		Fat:      c.Fat,
		Carbs:    c.Carbs,
		Fiber:    c.Fiber,
		Sugar:    c.Sugar,
		Sodium:   c.Sodium,
	}
}

func formatDay(t time.Time) string {
	return shared.Day(t).Format(shared.DateLayout)
}

// parseDay tolerates malformed rows by returning the zero time
func parseDay(s string) time.Time {
	t, err := time.Parse(shared.DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	s := r.Snapshot()
	return &RecipeModel{
		ID:          s.ID,
		Title:       s.Title,
		Category:    string(s.Category),
		Ingredients: StringSlice(s.IngredientNames),
		Nutrition:   nutrientsToColumns(s.Nutrition),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	return recipe.Restore(recipe.Snapshot{
		ID:              m.ID,
		Title:           m.Title,
		Category:        recipe.Category(m.Category),
		IngredientNames: []string(m.Ingredients),
		Nutrition:       columnsToNutrients(m.Nutrition),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	})
}

// ProfileToModel converts a diet profile to a GORM model
func ProfileToModel(p *user.Profile) *ProfileModel {
	return &ProfileModel{
		UserID:            p.ID,
		Age:               p.Age,
		Gender:            string(p.Gender),
		HeightCM:          p.HeightCM,
		WeightKG:          p.WeightKG,
		Goal:              p.Goal,
		BannedIngredients: StringSlice(p.BannedIngredients),
	}
}

// ModelToProfile converts a GORM model to a diet profile
func ModelToProfile(m *ProfileModel) *user.Profile {
	return &user.Profile{
		ID:                m.UserID,
		Age:               m.Age,
		Gender:            user.Gender(m.Gender),
		HeightCM:          m.HeightCM,
		WeightKG:          m.WeightKG,
		Goal:              m.Goal,
		BannedIngredients: []string(m.BannedIngredients),
	}
}

// GoalToModel converts a nutrition goal to a GORM model
func GoalToModel(g *nutrition.Goal) *GoalModel {
	return &GoalModel{
		ID:          g.ID,
		UserID:      g.UserID,
		Target:      nutrientsToColumns(g.Target),
		Period:      string(g.Period),
		PeriodValue: g.PeriodValue,
		Active:      g.Active,
		CreatedAt:   g.CreatedAt,
	}
}

// ModelToGoal converts a GORM model to a nutrition goal
func ModelToGoal(m *GoalModel) *nutrition.Goal {
	return &nutrition.Goal{
		ID:          m.ID,
		UserID:      m.UserID,
		Target:      columnsToNutrients(m.Target),
		Period:      nutrition.Period(m.Period),
		PeriodValue: m.PeriodValue,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
	}
}

// DailyMenuToModel converts a domain menu to a GORM model
func DailyMenuToModel(m *menu.DailyMenu) *DailyMenuModel {
	s := m.Snapshot()

	items := make(MenuItems, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, MenuItemRecord{
			ID:          it.ID,
			RecipeID:    it.RecipeID,
			Portion:     it.Portion,
			Note:        it.Note,
			ServingTime: string(it.ServingTime),
			Status:      string(it.Status),
		})
	}

	return &DailyMenuModel{
		ID:             s.ID,
		UserID:         s.UserID,
		Date:           formatDay(s.Date),
		Items:          items,
		TotalNutrition: nutrientsToColumns(s.TotalNutrition),
		Status:         string(s.Status),
		Source:         string(s.Source),
		OriginalMenuID: s.OriginalMenuID,
		Feedback:       s.Feedback,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// ModelToDailyMenu converts a GORM model to a domain menu
func ModelToDailyMenu(m *DailyMenuModel) *menu.DailyMenu {
	items := make([]menu.Item, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, menu.Item{
			ID:          it.ID,
			RecipeID:    it.RecipeID,
			Portion:     it.Portion,
			Note:        it.Note,
			ServingTime: menu.ServingTime(it.ServingTime),
			Status:      menu.ItemStatus(it.Status),
		})
	}

	return menu.Restore(menu.Snapshot{
		ID:             m.ID,
		UserID:         m.UserID,
		Date:           parseDay(m.Date),
		Items:          items,
		TotalNutrition: columnsToNutrients(m.TotalNutrition),
		Status:         menu.Status(m.Status),
		Source:         shared.Source(m.Source),
		OriginalMenuID: m.OriginalMenuID,
		Feedback:       m.Feedback,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	})
}

// MealPlanToModel converts a domain plan to a GORM model
func MealPlanToModel(p *plan.MealPlan) *MealPlanModel {
	s := p.Snapshot()
	return &MealPlanModel{
		ID:           s.ID,
		UserID:       s.UserID,
		StartDate:    formatDay(s.StartDate),
		EndDate:      formatDay(s.EndDate),
		Period:       string(s.Period),
		DailyMenuIDs: UUIDSlice(s.DailyMenuIDs),
		Source:       string(s.Source),
		Status:       string(s.Status),
		Modified:     s.Modified,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ModelToMealPlan converts a GORM model to a domain plan
func ModelToMealPlan(m *MealPlanModel) *plan.MealPlan {
	return plan.Restore(plan.Snapshot{
		ID:           m.ID,
		UserID:       m.UserID,
		StartDate:    parseDay(m.StartDate),
		EndDate:      parseDay(m.EndDate),
		Period:       plan.Period(m.Period),
		DailyMenuIDs: []uuid.UUID(m.DailyMenuIDs),
		Source:       shared.Source(m.Source),
		Status:       plan.Status(m.Status),
		Modified:     m.Modified,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	})
}
