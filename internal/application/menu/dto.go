package menu

import (
	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/ports/inbound"
)

// ToDTO converts a daily menu to its transport form
func ToDTO(m *menu.DailyMenu) *inbound.DailyMenuDTO {
	items := m.Items()
	dtoItems := make([]inbound.MenuItemDTO, 0, len(items))
	for _, it := range items {
		dtoItems = append(dtoItems, inbound.MenuItemDTO{
			ID:          it.ID,
			RecipeID:    it.RecipeID,
			Portion:     it.Portion,
			Note:        it.Note,
			ServingTime: string(it.ServingTime),
			Status:      string(it.Status),
		})
	}
	return &inbound.DailyMenuDTO{
		ID:             m.ID(),
		UserID:         m.UserID(),
		Date:           m.Date().Format(shared.DateLayout),
		Items:          dtoItems,
		TotalNutrition: m.TotalNutrition(),
		Status:         string(m.Status()),
		Source:         string(m.Source()),
		OriginalMenuID: m.OriginalMenuID(),
		Feedback:       m.Feedback(),
		CreatedAt:      m.CreatedAt(),
		UpdatedAt:      m.UpdatedAt(),
	}
}
