package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/domain"
)

// ContractFilter narrows contract list queries. Zero values mean "no filter".
type ContractFilter struct {
	Status     domain.ContractStatus
	VehicleID  int64
	CustomerID int64
	BranchID   int64
	FromDate   string
	ToDate     string
}

type ContractRepository interface {
	Create(ctx context.Context, c *domain.Contract) error
	GetByID(ctx context.Context, id int64) (*domain.Contract, error)
	// GetForUpdate locks the contract row for the rest of the transaction.
	GetForUpdate(ctx context.Context, id int64) (*domain.Contract, error)
	Update(ctx context.Context, c *domain.Contract) error
	// NextNumberSeq returns the next per-prefix sequence for contract numbers.
	// Only meaningful inside the transaction that inserts the contract.
	NextNumberSeq(ctx context.Context, prefix string) (int32, error)
	// CountOverlapping counts non-terminal contracts for a vehicle whose date
	// interval intersects [startDate, endDate]. excludeContractID (0 = none)
	// lets an extension ignore its own contract.
	CountOverlapping(ctx context.Context, vehicleID int64, startDate, endDate string, excludeContractID int64) (int64, error)
	List(ctx context.Context, f ContractFilter, page, pageSize int32) ([]domain.ContractListItem, int32, error)
	GetDetail(ctx context.Context, id int64) (*domain.ContractListItem, error)
	// ListOverdue returns active or extended contracts whose end date is
	// before asOf. Read only.
	ListOverdue(ctx context.Context, asOf string) ([]domain.ContractListItem, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	Delete(ctx context.Context, id int64) error
	SumByType(ctx context.Context, contractID int64, t domain.PaymentType) (decimal.Decimal, error)
	ListByContract(ctx context.Context, contractID int64) ([]domain.Payment, error)
}

type ExtensionRepository interface {
	Create(ctx context.Context, e *domain.Extension) error
	ListByContract(ctx context.Context, contractID int64) ([]domain.Extension, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Vehicle, error)
	// SetStatus updates the catalog status and the current-contract pointer
	// together; a nil contract id clears the pointer.
	SetStatus(ctx context.Context, id int64, status domain.VehicleStatus, currentContractID *int64) error
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type SettingsRepository interface {
	DepositPercentage(ctx context.Context) (decimal.Decimal, error)
}

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
}

// UnitOfWork is the repository set visible inside one transaction boundary.
type UnitOfWork interface {
	Contracts() ContractRepository
	Payments() PaymentRepository
	Extensions() ExtensionRepository
	Vehicles() VehicleRepository
	Customers() CustomerRepository
	Settings() SettingsRepository
	Audit() AuditRepository
}

// Store is the storage entry point. Used directly it runs each call in
// auto-commit mode; WithinTx scopes fn to a single transaction that commits
// when fn returns nil and rolls back otherwise.
type Store interface {
	UnitOfWork
	WithinTx(ctx context.Context, fn func(UnitOfWork) error) error
}
