package service

import (
	"context"

	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

// AvailabilityService decides whether a vehicle is free for a date interval.
// It fails closed: a storage error never reads as "available".
type AvailabilityService interface {
	IsAvailable(ctx context.Context, vehicleID int64, startDate, endDate string, excludeContractID int64) (bool, error)
}

// CreateContractInput carries already-validated, already-authorized input for
// a new rental contract. Rates are snapshotted from the vehicle, not taken
// from the caller.
type CreateContractInput struct {
	VehicleID  int64
	CustomerID int64
	BranchID   int64
	StartDate  string
	EndDate    string
	WithDriver bool
	CreatedBy  int64
}

// RentalLedgerService owns the contract entity and its state machine.
type RentalLedgerService interface {
	CreateContract(ctx context.Context, in CreateContractInput) (*domain.Contract, error)
	ConfirmContract(ctx context.Context, contractID, actorID int64) (*domain.Contract, error)
	ActivateContract(ctx context.Context, contractID, actorID int64, pickup domain.ConditionSnapshot) (*domain.Contract, error)
	CompleteContract(ctx context.Context, contractID, actorID int64, returnDate string, ret domain.ConditionSnapshot) (*domain.Contract, error)
	CancelContract(ctx context.Context, contractID, actorID int64, reason string) (*domain.Contract, error)

	GetContract(ctx context.Context, contractID int64) (*domain.Contract, error)
	GetContractDetail(ctx context.Context, contractID int64) (*domain.ContractDetail, error)
	ListContracts(ctx context.Context, f repository.ContractFilter, page, pageSize int32) ([]domain.ContractListItem, int32, error)
	ListOverdueContracts(ctx context.Context, asOf string) ([]domain.ContractListItem, error)
}

// AddPaymentInput describes one payment against a contract.
type AddPaymentInput struct {
	ContractID  int64
	Amount      decimal.Decimal
	Type        domain.PaymentType
	Method      domain.PaymentMethod
	PaymentDate string
	ReferenceNo string
	RecordedBy  int64
}

// PaymentService records payments and keeps the owning contract's derived
// amounts consistent with the payment rows.
type PaymentService interface {
	AddPayment(ctx context.Context, in AddPaymentInput) (*domain.Payment, error)
	DeletePayment(ctx context.Context, paymentID, actorID int64) error
	ReconcileContract(ctx context.Context, contractID int64) (*domain.Contract, error)
	ListPayments(ctx context.Context, contractID int64) ([]domain.Payment, error)
}

// ExtensionService validates and applies contract end-date extensions.
type ExtensionService interface {
	// CanExtend returns nil when the extension is allowed; otherwise the
	// typed error names the first rule that failed.
	CanExtend(ctx context.Context, contractID int64, newEndDate string) error
	CreateExtension(ctx context.Context, contractID int64, newEndDate string, approvedBy int64) (*domain.Extension, error)
	ListExtensions(ctx context.Context, contractID int64) ([]domain.Extension, error)
}

// Notifier receives lifecycle hook calls after a mutation commits. Every call
// is fire-and-forget: implementations must not fail the operation and should
// log their own errors.
type Notifier interface {
	ContractCreated(ctx context.Context, c *domain.Contract)
	ContractConfirmed(ctx context.Context, c *domain.Contract)
	ContractActivated(ctx context.Context, c *domain.Contract)
	ContractCompleted(ctx context.Context, c *domain.Contract)
	ContractCancelled(ctx context.Context, c *domain.Contract)
	ContractExtended(ctx context.Context, c *domain.Contract, e *domain.Extension)
	PaymentRecorded(ctx context.Context, p *domain.Payment)
	ContractOverdue(ctx context.Context, item *domain.ContractListItem)
}
