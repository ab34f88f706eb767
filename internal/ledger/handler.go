// internal/ledger/handler.go
package ledger

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"reusehub/internal/httpx"
	"reusehub/internal/session"
)

type Handler struct {
	service  Service
	sessions session.Store
}

func NewHandler(service Service, sessions session.Store) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// Routes mounts the ledger endpoints on a chi router. The current-order
// routes operate on the calling session's open-order pointer.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/orders", h.handleStartOrder)
	r.Get("/orders/{orderID}", h.handleGetOrder)
	r.Post("/orders/{orderID}/items", h.handleAddItem)
	r.Get("/current-order", h.handleCurrentOrder)
	r.Post("/current-order/items", h.handleAddToCurrentOrder)
	r.Delete("/current-order", h.handleAbandonCurrentOrder)
}

func (h *Handler) handleStartOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	var req struct {
		ClientUsername string `json:"clientUsername"`
		Notes          string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	orderID, err := h.service.StartOrder(r.Context(), sess, req.ClientUsername, req.Notes)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	if err := h.sessions.SetOpenOrder(r.Context(), sess.SessionID, orderID); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]int64{"orderID": orderID})
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	var req struct {
		ItemID int64 `json:"itemID"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.AddItem(r.Context(), sess, orderID, req.ItemID); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCurrentOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok || sess.OpenOrderID == nil {
		http.Error(w, "no open order for this session", http.StatusNotFound)
		return
	}

	order, err := h.service.GetOrder(r.Context(), *sess.OpenOrderID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) handleAddToCurrentOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}
	if sess.OpenOrderID == nil {
		http.Error(w, "no open order for this session", http.StatusNotFound)
		return
	}

	var req struct {
		ItemID int64 `json:"itemID"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.AddItem(r.Context(), sess, *sess.OpenOrderID, req.ItemID); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAbandonCurrentOrder clears the session's pointer. The order itself
// records no closure; it simply stops being this session's current order.
func (h *Handler) handleAbandonCurrentOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	if err := h.sessions.ClearOpenOrder(r.Context(), sess.SessionID); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
