// Package httpx maps service errors onto HTTP responses so every handler
// speaks the same status vocabulary.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"reusehub/internal/fault"
)

// JSON writes v as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error translates a fault kind into a status code and writes the message.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, fault.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, fault.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, fault.ErrUnauthorized):
		status = http.StatusForbidden
	case fault.IsValidation(err):
		status = http.StatusBadRequest
	}
	JSON(w, status, map[string]string{"error": err.Error()})
}
