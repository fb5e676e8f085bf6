package http

import (
	"encoding/json"
	"net/http"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

// ExtensionHandler manages contract end-date extensions.
type ExtensionHandler struct {
	extensions service.ExtensionService
}

func NewExtensionHandler(extensions service.ExtensionService) *ExtensionHandler {
	return &ExtensionHandler{extensions: extensions}
}

type extendabilityResponse struct {
	ContractID int64  `json:"contract_id"`
	NewEndDate string `json:"new_end_date"`
	CanExtend  bool   `json:"can_extend"`
	Reason     string `json:"reason,omitempty"`
}

func (h *ExtensionHandler) Check(w http.ResponseWriter, r *http.Request) {
	contractID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	newEndDate := r.URL.Query().Get("new_end_date")

	resp := extendabilityResponse{ContractID: contractID, NewEndDate: newEndDate, CanExtend: true}
	if err := h.extensions.CanExtend(r.Context(), contractID, newEndDate); err != nil {
		if domain.CodeOf(err) == domain.ErrCodeInternal {
			writeError(w, err)
			return
		}
		resp.CanExtend = false
		resp.Reason = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

type createExtensionRequest struct {
	NewEndDate string `json:"new_end_date"`
	ApprovedBy int64  `json:"approved_by"`
}

func (h *ExtensionHandler) Create(w http.ResponseWriter, r *http.Request) {
	contractID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req createExtensionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	extension, err := h.extensions.CreateExtension(r.Context(), contractID, req.NewEndDate, req.ApprovedBy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, extension)
}

func (h *ExtensionHandler) List(w http.ResponseWriter, r *http.Request) {
	contractID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	extensions, err := h.extensions.ListExtensions(r.Context(), contractID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"extensions": extensions})
}
