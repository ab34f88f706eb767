// internal/intake/handler.go
package intake

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reusehub/internal/catalog"
	"reusehub/internal/httpx"
	"reusehub/internal/session"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the intake endpoint on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/donations", h.handleAcceptDonation)
}

func (h *Handler) handleAcceptDonation(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	var req struct {
		DonorUsername string                     `json:"donorUsername"`
		Item          catalog.ItemDescriptor    `json:"item"`
		Pieces        []catalog.PieceDescriptor `json:"pieces"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	itemID, err := h.service.AcceptDonation(r.Context(), sess, req.DonorUsername, req.Item, req.Pieces)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]int64{"itemID": itemID})
}
