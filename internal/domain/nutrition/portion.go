package nutrition

import "github.com/google/uuid"

// Portion is a recipe reference scaled by a serving multiplier
type Portion struct {
	RecipeID uuid.UUID
	Amount   float64
}
