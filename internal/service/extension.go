package service

import (
	"context"

	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/pricing"
	"fleetrent-backend/internal/repository"
)

type extensionService struct {
	store    repository.Store
	notifier Notifier
}

func NewExtensionService(store repository.Store, notifier Notifier) ExtensionService {
	return &extensionService{store: store, notifier: notifier}
}

// CanExtend applies the extension rules in order: the contract must exist, be
// active or extended, the new end date must be strictly later, and the
// vehicle must be free for the added window ignoring this contract itself.
func (s *extensionService) CanExtend(ctx context.Context, contractID int64, newEndDate string) error {
	contract, err := s.store.Contracts().GetByID(ctx, contractID)
	if err != nil {
		return err
	}
	return checkExtendable(ctx, s.store, contract, newEndDate)
}

func checkExtendable(ctx context.Context, uow repository.UnitOfWork, contract *domain.Contract, newEndDate string) error {
	if !contract.Status.CanTransitionTo(domain.ContractStatusExtended) {
		return domain.NewInvalidTransition(contract.Status, "extend")
	}
	if _, err := pricing.ExtensionDays(contract.EndDate, newEndDate); err != nil {
		return err
	}
	// The added window starts the day after the current end date: the current
	// end day is already covered by this contract.
	windowStart, err := pricing.AddDays(contract.EndDate, 1)
	if err != nil {
		return err
	}
	return checkVehicleFree(ctx, uow, contract.VehicleID, windowStart, newEndDate, contract.ID)
}

// CreateExtension re-validates inside the write transaction, inserts the
// extension row, and applies the additive contract update: new end date,
// longer duration, larger total and remaining, status EXTENDED.
func (s *extensionService) CreateExtension(ctx context.Context, contractID int64, newEndDate string, approvedBy int64) (*domain.Extension, error) {
	var extension *domain.Extension
	var contract, old *domain.Contract
	err := s.store.WithinTx(ctx, func(uow repository.UnitOfWork) error {
		c, err := uow.Contracts().GetForUpdate(ctx, contractID)
		if err != nil {
			return err
		}
		if _, err := uow.Vehicles().GetForUpdate(ctx, c.VehicleID); err != nil {
			return err
		}
		if err := checkExtendable(ctx, uow, c, newEndDate); err != nil {
			return err
		}
		prev := *c
		old = &prev

		days, err := pricing.ExtensionDays(c.EndDate, newEndDate)
		if err != nil {
			return err
		}
		amount := pricing.EffectiveDailyRate(c.DailyRate, c.DriverDailyRate, c.WithDriver).
			Mul(decimal.NewFromInt32(days))

		extension = &domain.Extension{
			ContractID:      c.ID,
			OriginalEndDate: c.EndDate,
			NewEndDate:      newEndDate,
			ExtensionDays:   days,
			Amount:          amount,
			PaymentStatus:   domain.PaymentStatusPending,
			ApprovedBy:      approvedBy,
		}
		if err := uow.Extensions().Create(ctx, extension); err != nil {
			return err
		}

		c.EndDate = newEndDate
		c.DurationDays += days
		c.TotalAmount = c.TotalAmount.Add(amount)
		c.RemainingAmount = c.RemainingAmount.Add(amount)
		c.PaymentStatus = pricing.DerivePaymentStatus(c.PaidAmount, c.TotalAmount)
		c.Status = domain.ContractStatusExtended
		if err := uow.Contracts().Update(ctx, c); err != nil {
			return err
		}
		contract = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	writeAudit(ctx, s.store, "create", "extension", extension.ID, approvedBy, old, contract)
	s.notifier.ContractExtended(ctx, contract, extension)
	return extension, nil
}

func (s *extensionService) ListExtensions(ctx context.Context, contractID int64) ([]domain.Extension, error) {
	if _, err := s.store.Contracts().GetByID(ctx, contractID); err != nil {
		return nil, err
	}
	return s.store.Extensions().ListByContract(ctx, contractID)
}
