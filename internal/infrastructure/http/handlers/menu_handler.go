package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/nutriplan/v1/pkg/errors"
)

// MenuHandlers handles daily menu requests
type MenuHandlers struct {
	base
	menus inbound.MenuService
}

// NewMenuHandlers creates menu handlers
func NewMenuHandlers(menus inbound.MenuService, logger *zap.Logger) *MenuHandlers {
	return &MenuHandlers{base: newBase(logger.Named("menu-handlers")), menus: menus}
}

type menuItemRequest struct {
	ID          *string  `json:"id,omitempty" validate:"omitempty,uuid"`
	RecipeID    string   `json:"recipe_id" validate:"required,uuid"`
	Portion     *float64 `json:"portion,omitempty" validate:"omitempty,gte=0"`
	Note        string   `json:"note,omitempty" validate:"max=500"`
	ServingTime string   `json:"serving_time,omitempty"`
}

func (m menuItemRequest) toInput() inbound.MenuItemInput {
	in := inbound.MenuItemInput{
		RecipeID:    uuid.MustParse(m.RecipeID),
		Portion:     m.Portion,
		Note:        m.Note,
		ServingTime: m.ServingTime,
	}
	if m.ID != nil {
		id := uuid.MustParse(*m.ID)
		in.ID = &id
	}
	return in
}

func toInputs(items []menuItemRequest) []inbound.MenuItemInput {
	out := make([]inbound.MenuItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, it.toInput())
	}
	return out
}

type suggestMenuRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type setMenuRequest struct {
	Items []menuItemRequest `json:"items" validate:"dive"`
}

type itemStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type editMenuRequest struct {
	Items    *[]menuItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
	Feedback *string            `json:"feedback,omitempty" validate:"omitempty,max=2000"`
}

type feedbackRequest struct {
	Feedback string `json:"feedback" validate:"max=2000"`
}

type dateParam struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// SuggestMenu handles POST /api/v1/menus/suggest
func (h *MenuHandlers) SuggestMenu(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req suggestMenuRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	date, _ := shared.ParseDay(req.Date)

	dto, err := h.menus.SuggestDailyMenu(r.Context(), inbound.SuggestMenuCommand{UserID: userID, Date: date})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusCreated, dto, "Menu suggested")
}

// SetMenu handles PUT /api/v1/menus/by-date/{date}
func (h *MenuHandlers) SetMenu(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	date, err := h.pathDate(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req setMenuRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.menus.CreateOrUpdateDailyMenu(r.Context(), inbound.CreateOrUpdateMenuCommand{
		UserID: userID,
		Date:   date,
		Items:  toInputs(req.Items),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, dto, "")
}

// AddRecipe handles POST /api/v1/menus/by-date/{date}/items
func (h *MenuHandlers) AddRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	date, err := h.pathDate(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req menuItemRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.menus.AddRecipeToMenu(r.Context(), inbound.AddRecipeCommand{
		UserID: userID,
		Date:   date,
		Item:   req.toInput(),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, dto, "Recipe added")
}

// GetMenu handles GET /api/v1/menus/{menuID}
func (h *MenuHandlers) GetMenu(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	menuID, err := parseUUIDParam(chi.URLParam(r, "menuID"), "menuID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.menus.GetMenu(r.Context(), userID, menuID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, dto, "")
}

// ListMenus handles GET /api/v1/menus?start=&end=&status=
func (h *MenuHandlers) ListMenus(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	params := struct {
		Start string `json:"start" validate:"required,datetime=2006-01-02"`
		End   string `json:"end" validate:"required,datetime=2006-01-02"`
	}{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}
	if err := h.check(&params); err != nil {
		h.writeError(w, r, err)
		return
	}
	start, _ := shared.ParseDay(params.Start)
	end, _ := shared.ParseDay(params.End)

	query := inbound.ListMenusQuery{UserID: userID, Start: start, End: end}
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		query.Status = &status
	}

	dtos, err := h.menus.ListMenus(r.Context(), query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, dtos, "")
}

// SetItemStatus handles PATCH /api/v1/menus/{menuID}/items/{itemID}
func (h *MenuHandlers) SetItemStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	menuID, err := parseUUIDParam(chi.URLParam(r, "menuID"), "menuID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	itemID, err := parseUUIDParam(chi.URLParam(r, "itemID"), "itemID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req itemStatusRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.menus.SetItemStatus(r.Context(), inbound.SetItemStatusCommand{
		UserID: userID,
		MenuID: menuID,
		ItemID: itemID,
		Status: req.Status,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, dto, "")
}

// EditMenu handles PATCH /api/v1/menus/{menuID}
func (h *MenuHandlers) EditMenu(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	menuID, err := parseUUIDParam(chi.URLParam(r, "menuID"), "menuID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req editMenuRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Items == nil && req.Feedback == nil {
		h.writeError(w, r, errors.NewValidationError("items or feedback is required"))
		return
	}

	cmd := inbound.EditMenuCommand{UserID: userID, MenuID: menuID, Feedback: req.Feedback}
	if req.Items != nil {
		items := toInputs(*req.Items)
		cmd.Items = &items
	}

	dto, err := h.menus.EditMenu(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, dto, "")
}

// SubmitFeedback handles POST /api/v1/menus/{menuID}/feedback
func (h *MenuHandlers) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	menuID, err := parseUUIDParam(chi.URLParam(r, "menuID"), "menuID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req feedbackRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.menus.SubmitFeedback(r.Context(), inbound.SubmitFeedbackCommand{
		UserID:   userID,
		MenuID:   menuID,
		Feedback: req.Feedback,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, dto, "Feedback saved")
}

func (h *MenuHandlers) pathDate(r *http.Request) (time.Time, error) {
	p := dateParam{Date: chi.URLParam(r, "date")}
	if err := h.check(&p); err != nil {
		return time.Time{}, err
	}
	parsed, _ := shared.ParseDay(p.Date)
	return parsed, nil
}
