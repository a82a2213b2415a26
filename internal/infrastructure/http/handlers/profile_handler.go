package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/ports/inbound"
)

// ProfileHandlers handles the authenticated user's profile and goals
type ProfileHandlers struct {
	base
	profiles inbound.ProfileService
}

// NewProfileHandlers creates profile handlers
func NewProfileHandlers(profiles inbound.ProfileService, logger *zap.Logger) *ProfileHandlers {
	return &ProfileHandlers{base: newBase(logger.Named("profile-handlers")), profiles: profiles}
}

type saveProfileRequest struct {
	Age               int      `json:"age" validate:"gte=0,lte=150"`
	Gender            string   `json:"gender" validate:"omitempty,oneof=male female other"`
	HeightCM          float64  `json:"height_cm" validate:"gte=0,lte=300"`
	WeightKG          float64  `json:"weight_kg" validate:"gte=0,lte=700"`
	Goal              string   `json:"goal,omitempty" validate:"max=200"`
	BannedIngredients []string `json:"banned_ingredients" validate:"dive,required,max=100"`
}

type setGoalRequest struct {
	Target      nutrition.Nutrients `json:"target"`
	Period      string              `json:"period" validate:"required,oneof=day week month custom"`
	PeriodValue int                 `json:"period_value" validate:"gte=0"`
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, dto, "")
}

// SaveProfile handles PUT /api/v1/profile
func (h *ProfileHandlers) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req saveProfileRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.profiles.SaveProfile(r.Context(), inbound.SaveProfileCommand{
		UserID:            userID,
		Age:               req.Age,
		Gender:            req.Gender,
		HeightCM:          req.HeightCM,
		WeightKG:          req.WeightKG,
		Goal:              req.Goal,
		BannedIngredients: req.BannedIngredients,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, dto, "Profile saved")
}

// SetGoal handles POST /api/v1/profile/goals
func (h *ProfileHandlers) SetGoal(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req setGoalRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.profiles.SetGoal(r.Context(), inbound.SetGoalCommand{
		UserID:      userID,
		Target:      req.Target,
		Period:      req.Period,
		PeriodValue: req.PeriodValue,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusCreated, dto, "Goal recorded")
}

// GetDailyTarget handles GET /api/v1/profile/daily-target
func (h *ProfileHandlers) GetDailyTarget(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	target, err := h.profiles.GetDailyTarget(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, target, "")
}
