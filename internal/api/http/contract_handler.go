package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/service"
)

// ContractHandler exposes the contract lifecycle over HTTP.
type ContractHandler struct {
	rental       service.RentalLedgerService
	availability service.AvailabilityService
}

func NewContractHandler(rental service.RentalLedgerService, availability service.AvailabilityService) *ContractHandler {
	return &ContractHandler{rental: rental, availability: availability}
}

type createContractRequest struct {
	VehicleID  int64  `json:"vehicle_id"`
	CustomerID int64  `json:"customer_id"`
	BranchID   int64  `json:"branch_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	WithDriver bool   `json:"with_driver"`
	CreatedBy  int64  `json:"created_by"`
}

func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	contract, err := h.rental.CreateContract(r.Context(), service.CreateContractInput{
		VehicleID:  req.VehicleID,
		CustomerID: req.CustomerID,
		BranchID:   req.BranchID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		WithDriver: req.WithDriver,
		CreatedBy:  req.CreatedBy,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract)
}

type actorRequest struct {
	ActorID int64 `json:"actor_id"`
}

func (h *ContractHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req actorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	contract, err := h.rental.ConfirmContract(r.Context(), id, req.ActorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

type activateContractRequest struct {
	ActorID    int64  `json:"actor_id"`
	OdometerKm int32  `json:"odometer_km"`
	FuelLevel  int32  `json:"fuel_level"`
	Notes      string `json:"notes"`
}

func (h *ContractHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req activateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	contract, err := h.rental.ActivateContract(r.Context(), id, req.ActorID, domain.ConditionSnapshot{
		OdometerKM: req.OdometerKm,
		FuelLevel:  req.FuelLevel,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

type completeContractRequest struct {
	ActorID    int64  `json:"actor_id"`
	ReturnDate string `json:"return_date"`
	OdometerKm int32  `json:"odometer_km"`
	FuelLevel  int32  `json:"fuel_level"`
	Notes      string `json:"notes"`
}

func (h *ContractHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req completeContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	contract, err := h.rental.CompleteContract(r.Context(), id, req.ActorID, req.ReturnDate, domain.ConditionSnapshot{
		OdometerKM: req.OdometerKm,
		FuelLevel:  req.FuelLevel,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

type cancelContractRequest struct {
	ActorID int64  `json:"actor_id"`
	Reason  string `json:"reason"`
}

func (h *ContractHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req cancelContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	contract, err := h.rental.CancelContract(r.Context(), id, req.ActorID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	detail, err := h.rental.GetContractDetail(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

type listContractsResponse struct {
	Contracts []domain.ContractListItem `json:"contracts"`
	Total     int32                     `json:"total"`
	Page      int32                     `json:"page"`
	PageSize  int32                     `json:"page_size"`
}

func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ContractFilter{
		Status:     domain.ContractStatus(q.Get("status")),
		VehicleID:  queryID(q.Get("vehicle_id")),
		CustomerID: queryID(q.Get("customer_id")),
		BranchID:   queryID(q.Get("branch_id")),
		FromDate:   q.Get("from_date"),
		ToDate:     q.Get("to_date"),
	}
	page := int32(queryID(q.Get("page")))
	if page < 1 {
		page = 1
	}
	pageSize := int32(queryID(q.Get("page_size")))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.rental.ListContracts(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listContractsResponse{
		Contracts: items,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	})
}

func (h *ContractHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	items, err := h.rental.ListOverdueContracts(r.Context(), r.URL.Query().Get("as_of"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contracts": items})
}

type availabilityResponse struct {
	VehicleID int64  `json:"vehicle_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}

func (h *ContractHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	q := r.URL.Query()
	startDate := q.Get("start_date")
	endDate := q.Get("end_date")

	available, err := h.availability.IsAvailable(r.Context(), id, startDate, endDate, queryID(q.Get("exclude_contract_id")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse{
		VehicleID: id,
		StartDate: startDate,
		EndDate:   endDate,
		Available: available,
	})
}

// pathID parses a numeric path variable, writing a 404 on garbage input so
// /contracts/abc behaves like a missing resource rather than a server fault.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id < 1 {
		writeError(w, domain.NewNotFound(name, id))
		return 0, false
	}
	return id, true
}

func queryID(s string) int64 {
	if s == "" {
		return 0
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
