// Package httpapi exposes the backend services over a JSON HTTP API.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charbel291291291/election2026/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the sentinel error taxonomy onto HTTP statuses. All
// authentication failures share one uniform 401 body; root-session refusals
// carry a machine-readable code so the client can tell an expired grant
// from a denied one.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrAgentBanned):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})

	case errors.Is(err, common.ErrAuthorizationExpired):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "root session expired", Code: "root_expired"})

	case errors.Is(err, common.ErrAuthorizationDenied):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden", Code: "root_denied"})

	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})

	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
