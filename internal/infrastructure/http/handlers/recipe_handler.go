package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/ports/inbound"
)

// RecipeHandlers handles recipe catalogue requests
type RecipeHandlers struct {
	base
	recipes inbound.RecipeService
}

// NewRecipeHandlers creates recipe handlers
func NewRecipeHandlers(recipes inbound.RecipeService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{base: newBase(logger.Named("recipe-handlers")), recipes: recipes}
}

type createRecipeRequest struct {
	Title       string              `json:"title" validate:"required,max=200"`
	Category    string              `json:"category" validate:"required"`
	Ingredients []string            `json:"ingredients" validate:"dive,required,max=100"`
	Nutrition   nutrition.Nutrients `json:"nutrition"`
}

// CreateRecipe handles POST /api/v1/recipes
func (h *RecipeHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req createRecipeRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.recipes.CreateRecipe(r.Context(), inbound.CreateRecipeCommand{
		Title:       req.Title,
		Category:    req.Category,
		Ingredients: req.Ingredients,
		Nutrition:   req.Nutrition,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusCreated, dto, "Recipe created")
}

// GetRecipe handles GET /api/v1/recipes/{recipeID}
func (h *RecipeHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(chi.URLParam(r, "recipeID"), "recipeID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.recipes.GetRecipe(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, dto, "")
}

// ListRecipes handles GET /api/v1/recipes?category=main,side&exclude=peanut
func (h *RecipeHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	query := inbound.ListRecipesQuery{
		Categories: splitList(r.URL.Query()["category"]),
		Exclude:    splitList(r.URL.Query()["exclude"]),
	}

	dtos, err := h.recipes.ListRecipes(r.Context(), query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, dtos, "")
}

// splitList accepts both repeated parameters and comma separated values
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
