package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fleetrent-backend/internal/service"
)

// NewRouter wires the back-office API under /api/v1.
func NewRouter(
	rental service.RentalLedgerService,
	availability service.AvailabilityService,
	payments service.PaymentService,
	extensions service.ExtensionService,
) *mux.Router {
	contractHandler := NewContractHandler(rental, availability)
	paymentHandler := NewPaymentHandler(payments)
	extensionHandler := NewExtensionHandler(extensions)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/contracts", contractHandler.Create).Methods("POST")
	api.HandleFunc("/contracts", contractHandler.List).Methods("GET")
	// Registered before /contracts/{id} so "overdue" is not parsed as an id.
	api.HandleFunc("/contracts/overdue", contractHandler.ListOverdue).Methods("GET")
	api.HandleFunc("/contracts/{id}", contractHandler.Get).Methods("GET")
	api.HandleFunc("/contracts/{id}/confirm", contractHandler.Confirm).Methods("POST")
	api.HandleFunc("/contracts/{id}/activate", contractHandler.Activate).Methods("POST")
	api.HandleFunc("/contracts/{id}/complete", contractHandler.Complete).Methods("POST")
	api.HandleFunc("/contracts/{id}/cancel", contractHandler.Cancel).Methods("POST")

	api.HandleFunc("/contracts/{id}/payments", paymentHandler.Add).Methods("POST")
	api.HandleFunc("/contracts/{id}/payments", paymentHandler.List).Methods("GET")
	api.HandleFunc("/contracts/{id}/reconcile", paymentHandler.Reconcile).Methods("POST")
	api.HandleFunc("/payments/{id}", paymentHandler.Delete).Methods("DELETE")

	api.HandleFunc("/contracts/{id}/extensions/check", extensionHandler.Check).Methods("GET")
	api.HandleFunc("/contracts/{id}/extensions", extensionHandler.Create).Methods("POST")
	api.HandleFunc("/contracts/{id}/extensions", extensionHandler.List).Methods("GET")

	api.HandleFunc("/vehicles/{id}/availability", contractHandler.CheckAvailability).Methods("GET")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return router
}
