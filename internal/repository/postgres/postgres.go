package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

// DBTX is the querying surface shared by *sql.DB and *sql.Tx. Repositories
// are built over it so the same code runs inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type unitOfWork struct {
	contracts  repository.ContractRepository
	payments   repository.PaymentRepository
	extensions repository.ExtensionRepository
	vehicles   repository.VehicleRepository
	customers  repository.CustomerRepository
	settings   repository.SettingsRepository
	audit      repository.AuditRepository
}

func newUnitOfWork(q DBTX) *unitOfWork {
	return &unitOfWork{
		contracts:  NewContractRepository(q),
		payments:   NewPaymentRepository(q),
		extensions: NewExtensionRepository(q),
		vehicles:   NewVehicleRepository(q),
		customers:  NewCustomerRepository(q),
		settings:   NewSettingsRepository(q),
		audit:      NewAuditRepository(q),
	}
}

func (u *unitOfWork) Contracts() repository.ContractRepository { return u.contracts }
func (u *unitOfWork) Payments() repository.PaymentRepository { return u.payments }
func (u *unitOfWork) Extensions() repository.ExtensionRepository { return u.extensions }
func (u *unitOfWork) Vehicles() repository.VehicleRepository { return u.vehicles }
func (u *unitOfWork) Customers() repository.CustomerRepository { return u.customers }
func (u *unitOfWork) Settings() repository.SettingsRepository { return u.settings }
func (u *unitOfWork) Audit() repository.AuditRepository { return u.audit }

// Store implements repository.Store over a PostgreSQL pool.
type Store struct {
	db *sql.DB
	*unitOfWork
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, unitOfWork: newUnitOfWork(db)}
}

// WithinTx runs fn inside one transaction. fn returning nil commits; any
// error rolls back the whole unit.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.UnitOfWork) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(newUnitOfWork(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("Transaction rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
