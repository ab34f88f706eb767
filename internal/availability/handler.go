// internal/availability/handler.go
package availability

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

// Routes mounts the availability endpoint on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/available-items", h.handleAvailableItems)
}

func (h *Handler) handleAvailableItems(w http.ResponseWriter, r *http.Request) {
	main := r.URL.Query().Get("mainCategory")
	sub := r.URL.Query().Get("subCategory")
	if main == "" || sub == "" {
		http.Error(w, "mainCategory and subCategory are required", http.StatusBadRequest)
		return
	}

	items, err := h.service.AvailableItems(r.Context(), main, sub)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"items": items})
}
