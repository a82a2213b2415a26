package plan

import (
	"github.com/nutriplan/v1/internal/domain/plan"
	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/ports/inbound"
)

// ToDTO converts a meal plan to its transport form
func ToDTO(p *plan.MealPlan) *inbound.MealPlanDTO {
	return &inbound.MealPlanDTO{
		ID:           p.ID(),
		UserID:       p.UserID(),
		StartDate:    p.StartDate().Format(shared.DateLayout),
		EndDate:      p.EndDate().Format(shared.DateLayout),
		Period:       string(p.Period()),
		DailyMenuIDs: p.DailyMenuIDs(),
		Source:       string(p.Source()),
		Status:       string(p.Status()),
		Modified:     p.Modified(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}
