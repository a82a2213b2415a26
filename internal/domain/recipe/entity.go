package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/shared"
)

// Recipe is the read model of a catalogue recipe used by the planner
type Recipe struct {
	shared.AggregateRoot

	id              uuid.UUID
	title           string
	category        Category
	ingredientNames []string
	nutrition       nutrition.Nutrients
	createdAt       time.Time
	updatedAt       time.Time
}

// Snapshot is the flat, serializable form of a Recipe
type Snapshot struct {
	ID              uuid.UUID           `json:"id"`
	Title           string              `json:"title"`
	Category        Category            `json:"category"`
	IngredientNames []string            `json:"ingredient_names"`
	Nutrition       nutrition.Nutrients `json:"nutrition"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// NewRecipe creates a new recipe with validation
func NewRecipe(title string, category Category, ingredientNames []string, n nutrition.Nutrients) (*Recipe, error) {
	title = strings.TrimSpace(title)
	if len(title) < 3 {
		return nil, ErrTitleTooShort
	}
	if len(title) > 200 {
		return nil, ErrTitleTooLong
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	if err := n.Validate(); err != nil {
		return nil, ErrInvalidNutrition
	}

	now := time.Now()
	r := &Recipe{
		id:              uuid.New(),
		title:           title,
		category:        category,
		ingredientNames: append([]string(nil), ingredientNames...),
		nutrition:       n,
		createdAt:       now,
		updatedAt:       now,
	}

	r.AddEvent(RecipeCreatedEvent{
		RecipeID:  r.id,
		Title:     r.title,
		Category:  r.category,
		CreatedAt: now,
	})

	return r, nil
}

// Restore rebuilds a recipe from persisted state without validation or events
func Restore(s Snapshot) *Recipe {
	return &Recipe{
		id:              s.ID,
		title:           s.Title,
		category:        s.Category,
		ingredientNames: append([]string(nil), s.IngredientNames...),
		nutrition:       s.Nutrition,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
	}
}

// Snapshot returns the recipe's state as a plain value
func (r *Recipe) Snapshot() Snapshot {
	return Snapshot{
		ID:              r.id,
		Title:           r.title,
		Category:        r.category,
		IngredientNames: r.IngredientNames(),
		Nutrition:       r.nutrition,
		CreatedAt:       r.createdAt,
		UpdatedAt:       r.updatedAt,
	}
}

// ContainsAnyIngredient reports whether any ingredient matches a banned
// name, ignoring case and surrounding whitespace.
func (r *Recipe) ContainsAnyIngredient(banned []string) bool {
	if len(banned) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(banned))
	for _, b := range banned {
		if n := NormalizeIngredient(b); n != "" {
			set[n] = struct{}{}
		}
	}
	for _, name := range r.ingredientNames {
		if _, ok := set[NormalizeIngredient(name)]; ok {
			return true
		}
	}
	return false
}

// Getters

func (r *Recipe) ID() uuid.UUID                  { return r.id }
func (r *Recipe) Title() string                  { return r.title }
func (r *Recipe) Category() Category             { return r.category }
func (r *Recipe) Nutrition() nutrition.Nutrients { return r.nutrition }
func (r *Recipe) Calories() float64              { return r.nutrition.Calories }
func (r *Recipe) CreatedAt() time.Time           { return r.createdAt }
func (r *Recipe) UpdatedAt() time.Time           { return r.updatedAt }

// IngredientNames returns a copy of the ingredient names
func (r *Recipe) IngredientNames() []string {
	return append([]string(nil), r.ingredientNames...)
}
