package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/nutriplan/v1/pkg/errors"
)

// PlanHandlers handles meal plan requests
type PlanHandlers struct {
	base
	plans inbound.PlanService
}

// NewPlanHandlers creates plan handlers
func NewPlanHandlers(plans inbound.PlanService, logger *zap.Logger) *PlanHandlers {
	return &PlanHandlers{base: newBase(logger.Named("plan-handlers")), plans: plans}
}

// createPlanRequest keys per_day_recipes by day offset ("0".."6")
type createPlanRequest struct {
	StartDate     string                       `json:"start_date" validate:"required,datetime=2006-01-02"`
	Period        string                       `json:"period" validate:"required,oneof=day week"`
	PerDayRecipes map[string][]menuItemRequest `json:"per_day_recipes,omitempty" validate:"omitempty,dive,dive"`
	UseAI         bool                         `json:"use_ai"`
}

type planStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=suggested planned completed cancelled"`
}

// CreatePlan handles POST /api/v1/plans
func (h *PlanHandlers) CreatePlan(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req createPlanRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	start, _ := shared.ParseDay(req.StartDate)

	perDay := make(map[int][]inbound.MenuItemInput, len(req.PerDayRecipes))
	for key, items := range req.PerDayRecipes {
		offset, err := strconv.Atoi(key)
		if err != nil || offset < 0 {
			h.writeError(w, r, errors.NewValidationError("per_day_recipes keys must be day offsets"))
			return
		}
		perDay[offset] = toInputs(items)
	}

	dto, err := h.plans.CreatePlan(r.Context(), inbound.CreatePlanCommand{
		UserID:        userID,
		StartDate:     start,
		Period:        req.Period,
		PerDayRecipes: perDay,
		UseAI:         req.UseAI,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusCreated, dto, "Meal plan created")
}

// ListPlans handles GET /api/v1/plans
func (h *PlanHandlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	dtos, err := h.plans.ListPlans(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, dtos, "")
}

// GetPlan handles GET /api/v1/plans/{planID}
func (h *PlanHandlers) GetPlan(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	planID, err := parseUUIDParam(chi.URLParam(r, "planID"), "planID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.plans.GetPlan(r.Context(), userID, planID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, dto, "")
}

// UpdatePlanStatus handles PATCH /api/v1/plans/{planID}
func (h *PlanHandlers) UpdatePlanStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	planID, err := parseUUIDParam(chi.URLParam(r, "planID"), "planID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req planStatusRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.plans.UpdatePlanStatus(r.Context(), inbound.UpdatePlanStatusCommand{
		UserID: userID,
		PlanID: planID,
		Status: req.Status,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, dto, "")
}

// DeletePlan handles DELETE /api/v1/plans/{planID}
func (h *PlanHandlers) DeletePlan(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	planID, err := parseUUIDParam(chi.URLParam(r, "planID"), "planID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.plans.DeletePlan(r.Context(), userID, planID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
