package http

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

// PaymentHandler records and removes payments against a contract.
type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type addPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Method      string          `json:"method"`
	PaymentDate string          `json:"payment_date"`
	ReferenceNo string          `json:"reference_no"`
	RecordedBy  int64           `json:"recorded_by"`
}

func (h *PaymentHandler) Add(w http.ResponseWriter, r *http.Request) {
	contractID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req addPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	payment, err := h.payments.AddPayment(r.Context(), service.AddPaymentInput{
		ContractID:  contractID,
		Amount:      req.Amount,
		Type:        domain.PaymentType(req.Type),
		Method:      domain.PaymentMethod(req.Method),
		PaymentDate: req.PaymentDate,
		ReferenceNo: req.ReferenceNo,
		RecordedBy:  req.RecordedBy,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	contractID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	payments, err := h.payments.ListPayments(r.Context(), contractID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"payments": payments})
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	paymentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	actorID := queryID(r.URL.Query().Get("actor_id"))
	if err := h.payments.DeletePayment(r.Context(), paymentID, actorID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PaymentHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	contractID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	contract, err := h.payments.ReconcileContract(r.Context(), contractID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}
