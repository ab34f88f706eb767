// internal/location/handler.go
package location

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"reusehub/internal/httpx"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the location endpoints on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/rooms", h.handleListRooms)
	r.Get("/rooms/{roomNum}/shelves", h.handleShelvesInRoom)
}

func (h *Handler) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.ListRooms(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"rooms": rooms})
}

func (h *Handler) handleShelvesInRoom(w http.ResponseWriter, r *http.Request) {
	roomNum, err := strconv.Atoi(chi.URLParam(r, "roomNum"))
	if err != nil {
		http.Error(w, "invalid room number", http.StatusBadRequest)
		return
	}

	shelves, err := h.service.ShelvesInRoom(r.Context(), roomNum)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"shelves": shelves})
}
