package menu

import (
	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/nutrition"
)

// DefaultPortion is used when a caller does not specify a portion
const DefaultPortion = 1.0

// Item is one recipe placed on a daily menu
type Item struct {
	ID          uuid.UUID   `json:"id"`
	RecipeID    uuid.UUID   `json:"recipe_id"`
	Portion     float64     `json:"portion"`
	Note        string      `json:"note,omitempty"`
	ServingTime ServingTime `json:"serving_time"`
	Status      ItemStatus  `json:"status"`
}

// NewItem creates a planned menu item. A nil portion means DefaultPortion.
func NewItem(recipeID uuid.UUID, portion *float64, note string, servingTime ServingTime) (Item, error) {
	if recipeID == uuid.Nil {
		return Item{}, ErrInvalidRecipeRef
	}
	p := DefaultPortion
	if portion != nil {
		p = *portion
	}
	if p < 0 {
		return Item{}, ErrInvalidPortion
	}
	if servingTime == "" {
		servingTime = ServingOther
	}
	if !servingTime.Valid() {
		return Item{}, ErrInvalidServingTime
	}
	return Item{
		ID:          uuid.New(),
		RecipeID:    recipeID,
		Portion:     p,
		Note:        note,
		ServingTime: servingTime,
		Status:      ItemPlanned,
	}, nil
}

// Portions converts items into the aggregator's input
func Portions(items []Item) []nutrition.Portion {
	out := make([]nutrition.Portion, 0, len(items))
	for _, it := range items {
		out = append(out, nutrition.Portion{RecipeID: it.RecipeID, Amount: it.Portion})
	}
	return out
}

// ReconcileItems carries identity and consumption status from existing over
// to an edited item list. Items with a nil ID are new and start planned;
// any other ID must name an item of existing, whose status it keeps.
func ReconcileItems(existing, items []Item) ([]Item, error) {
	known := make(map[uuid.UUID]Item, len(existing))
	for _, it := range existing {
		known[it.ID] = it
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
			it.Status = ItemPlanned
		} else {
			prev, ok := known[it.ID]
			if !ok {
				return nil, &UnknownItemError{ID: it.ID}
			}
			if _, dup := seen[it.ID]; dup {
				return nil, ErrDuplicateItem
			}
			it.Status = prev.Status
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out, nil
}

// DroppedConsumed returns the items of existing that are missing from items
// and are no longer planned
func DroppedConsumed(existing, items []Item) []Item {
	kept := make(map[uuid.UUID]struct{}, len(items))
	for _, it := range items {
		kept[it.ID] = struct{}{}
	}
	var dropped []Item
	for _, it := range existing {
		if _, ok := kept[it.ID]; !ok && it.Status != ItemPlanned {
			dropped = append(dropped, it)
		}
	}
	return dropped
}
