package service

import (
	"context"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/pricing"
	"fleetrent-backend/internal/repository"
)

const contractNumberPrefix = "RC"

type rentalLedgerService struct {
	store    repository.Store
	notifier Notifier
	now      func() time.Time
}

func NewRentalLedgerService(store repository.Store, notifier Notifier) RentalLedgerService {
	return &rentalLedgerService{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateContract validates input, then inserts a PENDING contract. The
// availability check runs again inside the insert transaction, after the
// vehicle row is locked, so two concurrent requests cannot both observe
// "available" and both insert.
func (s *rentalLedgerService) CreateContract(ctx context.Context, in CreateContractInput) (*domain.Contract, error) {
	durationDays, err := pricing.DurationDays(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.Customers().Exists(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFound("customer", in.CustomerID)
	}

	var contract *domain.Contract
	err = s.store.WithinTx(ctx, func(uow repository.UnitOfWork) error {
		vehicle, err := uow.Vehicles().GetForUpdate(ctx, in.VehicleID)
		if err != nil {
			return err
		}
		if err := checkVehicleFreeWith(ctx, uow, vehicle, in.StartDate, in.EndDate, 0); err != nil {
			return err
		}

		depositPercent, err := uow.Settings().DepositPercentage(ctx)
		if err != nil {
			return err
		}
		quote, err := pricing.Compute(pricing.Input{
			DailyRate:       vehicle.DailyRate,
			DriverDailyRate: vehicle.DriverDailyRate,
			WithDriver:      in.WithDriver,
			StartDate:       in.StartDate,
			EndDate:         in.EndDate,
			DepositPercent:  depositPercent,
		})
		if err != nil {
			return err
		}

		prefix := fmt.Sprintf("%s-%s-", contractNumberPrefix, s.now().Format("20060102"))
		seq, err := uow.Contracts().NextNumberSeq(ctx, prefix)
		if err != nil {
			return err
		}

		contract = &domain.Contract{
			ContractNumber:  fmt.Sprintf("%s%04d", prefix, seq),
			VehicleID:       in.VehicleID,
			CustomerID:      in.CustomerID,
			BranchID:        in.BranchID,
			StartDate:       in.StartDate,
			EndDate:         in.EndDate,
			DailyRate:       vehicle.DailyRate,
			DriverDailyRate: vehicle.DriverDailyRate,
			WithDriver:      in.WithDriver,
			DurationDays:    durationDays,
			TotalAmount:     quote.TotalAmount,
			DepositAmount:   quote.DepositAmount,
			PaidAmount:      quote.TotalAmount.Sub(quote.RemainingAmount),
			RemainingAmount: quote.RemainingAmount,
			PaymentStatus:   quote.PaymentStatus,
			Status:          domain.ContractStatusPending,
			CreatedBy:       in.CreatedBy,
		}
		return uow.Contracts().Create(ctx, contract)
	})
	if err != nil {
		return nil, err
	}

	writeAudit(ctx, s.store, "create", "contract", contract.ID, in.CreatedBy, nil, contract)
	s.notifier.ContractCreated(ctx, contract)
	return contract, nil
}

func (s *rentalLedgerService) ConfirmContract(ctx context.Context, contractID, actorID int64) (*domain.Contract, error) {
	var contract, old *domain.Contract
	err := s.store.WithinTx(ctx, func(uow repository.UnitOfWork) error {
		c, err := uow.Contracts().GetForUpdate(ctx, contractID)
		if err != nil {
			return err
		}
		if !c.Status.CanTransitionTo(domain.ContractStatusConfirmed) {
			return domain.NewInvalidTransition(c.Status, "confirm")
		}
		prev := *c
		old = &prev

		c.Status = domain.ContractStatusConfirmed
		c.ConfirmedBy = &actorID
		if err := uow.Contracts().Update(ctx, c); err != nil {
			return err
		}
		contract = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	writeAudit(ctx, s.store, "confirm", "contract", contract.ID, actorID, old, contract)
	s.notifier.ContractConfirmed(ctx, contract)
	return contract, nil
}

// ActivateContract hands the vehicle over: the contract goes ACTIVE and the
// vehicle is marked rented with its current-contract pointer set, both in the
// same transaction.
func (s *rentalLedgerService) ActivateContract(ctx context.Context, contractID, actorID int64, pickup domain.ConditionSnapshot) (*domain.Contract, error) {
	var contract, old *domain.Contract
	err := s.store.WithinTx(ctx, func(uow repository.UnitOfWork) error {
		c, err := uow.Contracts().GetForUpdate(ctx, contractID)
		if err != nil {
			return err
		}
		if c.Status != domain.ContractStatusConfirmed {
			return domain.NewInvalidTransition(c.Status, "activate")
		}
		prev := *c
		old = &prev

		c.Status = domain.ContractStatusActive
		odometer, fuel := pickup.OdometerKM, pickup.FuelLevel
		c.PickupOdometerKM = &odometer
		c.PickupFuelLevel = &fuel
		c.PickupCondition = pickup.Notes
		if err := uow.Contracts().Update(ctx, c); err != nil {
			return err
		}
		if err := uow.Vehicles().SetStatus(ctx, c.VehicleID, domain.VehicleStatusRented, &c.ID); err != nil {
			return err
		}
		contract = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	writeAudit(ctx, s.store, "activate", "contract", contract.ID, actorID, old, contract)
	s.notifier.ContractActivated(ctx, contract)
	return contract, nil
}

// CompleteContract closes out a rental: return date and condition are
// recorded, the contract goes COMPLETED and the vehicle is released, all in
// one transaction.
func (s *rentalLedgerService) CompleteContract(ctx context.Context, contractID, actorID int64, returnDate string, ret domain.ConditionSnapshot) (*domain.Contract, error) {
	if _, err := pricing.ParseDate(returnDate); err != nil {
		return nil, domain.NewInvalidInterval("return_date", "expected yyyy-mm-dd, got "+returnDate)
	}

	var contract, old *domain.Contract
	err := s.store.WithinTx(ctx, func(uow repository.UnitOfWork) error {
		c, err := uow.Contracts().GetForUpdate(ctx, contractID)
		if err != nil {
			return err
		}
		if !c.Status.CanTransitionTo(domain.ContractStatusCompleted) {
			return domain.NewInvalidTransition(c.Status, "complete")
		}
		if returnDate < c.StartDate {
			return domain.NewInvalidInterval("return_date", "return date is before contract start")
		}
		prev := *c
		old = &prev

		c.Status = domain.ContractStatusCompleted
		c.ReturnDate = &returnDate
		odometer, fuel := ret.OdometerKM, ret.FuelLevel
		c.ReturnOdometerKM = &odometer
		c.ReturnFuelLevel = &fuel
		c.ReturnCondition = ret.Notes
		c.CompletedBy = &actorID
		if err := uow.Contracts().Update(ctx, c); err != nil {
			return err
		}
		if err := uow.Vehicles().SetStatus(ctx, c.VehicleID, domain.VehicleStatusAvailable, nil); err != nil {
			return err
		}
		contract = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	writeAudit(ctx, s.store, "complete", "contract", contract.ID, actorID, old, contract)
	s.notifier.ContractCompleted(ctx, contract)
	return contract, nil
}

func (s *rentalLedgerService) CancelContract(ctx context.Context, contractID, actorID int64, reason string) (*domain.Contract, error) {
	var contract, old *domain.Contract
	err := s.store.WithinTx(ctx, func(uow repository.UnitOfWork) error {
		c, err := uow.Contracts().GetForUpdate(ctx, contractID)
		if err != nil {
			return err
		}
		if !c.Status.CanTransitionTo(domain.ContractStatusCancelled) {
			return domain.NewInvalidTransition(c.Status, "cancel")
		}
		prev := *c
		old = &prev

		wasActive := c.Status == domain.ContractStatusActive
		c.Status = domain.ContractStatusCancelled
		c.CancelReason = reason
		if err := uow.Contracts().Update(ctx, c); err != nil {
			return err
		}
		// The vehicle only holds this contract once it was activated; earlier
		// cancellations must not overwrite an unrelated vehicle status.
		if wasActive {
			if err := uow.Vehicles().SetStatus(ctx, c.VehicleID, domain.VehicleStatusAvailable, nil); err != nil {
				return err
			}
		}
		contract = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	writeAudit(ctx, s.store, "cancel", "contract", contract.ID, actorID, old, contract)
	s.notifier.ContractCancelled(ctx, contract)
	return contract, nil
}

func (s *rentalLedgerService) GetContract(ctx context.Context, contractID int64) (*domain.Contract, error) {
	return s.store.Contracts().GetByID(ctx, contractID)
}

func (s *rentalLedgerService) GetContractDetail(ctx context.Context, contractID int64) (*domain.ContractDetail, error) {
	item, err := s.store.Contracts().GetDetail(ctx, contractID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.Payments().ListByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	extensions, err := s.store.Extensions().ListByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return &domain.ContractDetail{
		ContractListItem: *item,
		Payments:         payments,
		Extensions:       extensions,
	}, nil
}

func (s *rentalLedgerService) ListContracts(ctx context.Context, f repository.ContractFilter, page, pageSize int32) ([]domain.ContractListItem, int32, error) {
	return s.store.Contracts().List(ctx, f, page, pageSize)
}

func (s *rentalLedgerService) ListOverdueContracts(ctx context.Context, asOf string) ([]domain.ContractListItem, error) {
	if asOf == "" {
		asOf = s.now().Format(pricing.DateLayout)
	}
	return s.store.Contracts().ListOverdue(ctx, asOf)
}
