// internal/taxonomy/handler.go
package taxonomy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"reusehub/internal/httpx"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the taxonomy endpoints on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/categories", h.handleListCategories)
	r.Get("/categories/{mainCategory}/subcategories", h.handleSubCategories)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *Handler) handleSubCategories(w http.ResponseWriter, r *http.Request) {
	main := chi.URLParam(r, "mainCategory")
	subs, err := h.service.SubCategoriesOf(r.Context(), main)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"subCategories": subs})
}
