package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// badRequest covers malformed input at the HTTP layer, before the request
// reaches the domain error taxonomy.
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error: errorBody{Code: "BAD_REQUEST", Message: message},
	})
}

// writeError maps the domain error taxonomy onto HTTP statuses. Untyped
// errors surface as an opaque 500; their details stay in the logs.
func writeError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorBody{Code: string(domain.ErrCodeInternal), Message: "internal error"},
		})
		return
	}

	status := http.StatusInternalServerError
	switch de.Code {
	case domain.ErrCodeNotFound:
		status = http.StatusNotFound
	case domain.ErrCodeInvalidTransition, domain.ErrCodeVehicleUnavailable, domain.ErrCodeConflict:
		status = http.StatusConflict
	case domain.ErrCodeInvalidInterval, domain.ErrCodeInvalidAmount:
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, errorResponse{
		Error: errorBody{Code: string(de.Code), Field: de.Field, Message: de.Message},
	})
}
