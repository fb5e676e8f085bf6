package service

import (
	"context"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/pricing"
	"fleetrent-backend/internal/repository"
)

type availabilityService struct {
	store repository.Store
}

func NewAvailabilityService(store repository.Store) AvailabilityService {
	return &availabilityService{store: store}
}

// IsAvailable reports whether vehicleID is free over [startDate, endDate].
// Any storage error reports unavailable alongside the error; an availability
// check never silently passes on ambiguous data.
func (s *availabilityService) IsAvailable(ctx context.Context, vehicleID int64, startDate, endDate string, excludeContractID int64) (bool, error) {
	if _, err := pricing.DurationDays(startDate, endDate); err != nil {
		return false, err
	}
	err := checkVehicleFree(ctx, s.store, vehicleID, startDate, endDate, excludeContractID)
	if err == nil {
		return true, nil
	}
	if domain.IsCode(err, domain.ErrCodeVehicleUnavailable) {
		return false, nil
	}
	return false, err
}

// checkVehicleFree applies the availability decision rule against whatever
// querying surface it is handed. Callers that mutate run it inside their own
// transaction, after locking the vehicle row, so the answer cannot go stale
// before the write lands.
func checkVehicleFree(ctx context.Context, uow repository.UnitOfWork, vehicleID int64, startDate, endDate string, excludeContractID int64) error {
	vehicle, err := uow.Vehicles().GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	return checkVehicleFreeWith(ctx, uow, vehicle, startDate, endDate, excludeContractID)
}

func checkVehicleFreeWith(ctx context.Context, uow repository.UnitOfWork, vehicle *domain.Vehicle, startDate, endDate string, excludeContractID int64) error {
	// The catalog-status gate does not apply when the vehicle is held by the
	// very contract being re-checked (an extension of the active contract).
	heldByExcluded := excludeContractID != 0 &&
		vehicle.CurrentContractID != nil && *vehicle.CurrentContractID == excludeContractID
	if vehicle.Status != domain.VehicleStatusAvailable && !heldByExcluded {
		return domain.NewVehicleUnavailable(vehicle.ID, startDate, endDate)
	}

	overlapping, err := uow.Contracts().CountOverlapping(ctx, vehicle.ID, startDate, endDate, excludeContractID)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return domain.NewVehicleUnavailable(vehicle.ID, startDate, endDate)
	}
	return nil
}
