package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fleetrent-backend/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
}

func newRentalService(store *mockStore, notifier Notifier) *rentalLedgerService {
	return &rentalLedgerService{store: store, notifier: notifier, now: fixedNow}
}

func availableVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:              5,
		BranchID:        1,
		PlateNumber:     "B-1234-XY",
		Make:            "Toyota",
		Model:           "Corolla",
		Year:            2024,
		Status:          domain.VehicleStatusAvailable,
		DailyRate:       decimal.NewFromInt(100),
		DriverDailyRate: decimal.NewFromInt(40),
	}
}

func TestCreateContract(t *testing.T) {
	ctx := context.Background()

	t.Run("HappyPath", func(t *testing.T) {
		store := newMockStore()
		notifier := newRecordingNotifier()
		svc := newRentalService(store, notifier)

		store.customers.On("Exists", ctx, int64(9)).Return(true, nil)
		store.vehicles.On("GetForUpdate", ctx, int64(5)).Return(availableVehicle(), nil)
		store.contracts.On("CountOverlapping", ctx, int64(5), "2026-03-20", "2026-03-24", int64(0)).Return(int64(0), nil)
		store.settings.On("DepositPercentage", ctx).Return(decimal.NewFromInt(20), nil)
		store.contracts.On("NextNumberSeq", ctx, "RC-20260315-").Return(int32(7), nil)
		store.contracts.On("Create", ctx, mock.AnythingOfType("*domain.Contract")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Contract).ID = 42
			}).Return(nil)

		contract, err := svc.CreateContract(ctx, CreateContractInput{
			VehicleID:  5,
			CustomerID: 9,
			BranchID:   1,
			StartDate:  "2026-03-20",
			EndDate:    "2026-03-24",
			WithDriver: true,
			CreatedBy:  3,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(42), contract.ID)
		assert.Equal(t, "RC-20260315-0007", contract.ContractNumber)
		assert.Equal(t, domain.ContractStatusPending, contract.Status)
		assert.Equal(t, int32(5), contract.DurationDays)
		// 5 days at 100+40 with driver
		assert.True(t, contract.TotalAmount.Equal(decimal.NewFromInt(700)), "total %s", contract.TotalAmount)
		assert.True(t, contract.DepositAmount.Equal(decimal.NewFromInt(140)), "deposit %s", contract.DepositAmount)
		assert.True(t, contract.RemainingAmount.Equal(decimal.NewFromInt(700)))
		assert.Equal(t, domain.PaymentStatusPending, contract.PaymentStatus)
		// Rates are snapshotted from the vehicle.
		assert.True(t, contract.DailyRate.Equal(decimal.NewFromInt(100)))
		assert.True(t, contract.DriverDailyRate.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, 1, notifier.count("created"))
		store.contracts.AssertExpectations(t)
	})

	t.Run("OverlappingContractRejected", func(t *testing.T) {
		store := newMockStore()
		svc := newRentalService(store, NewNopNotifier())

		store.customers.On("Exists", ctx, int64(9)).Return(true, nil)
		store.vehicles.On("GetForUpdate", ctx, int64(5)).Return(availableVehicle(), nil)
		store.contracts.On("CountOverlapping", ctx, int64(5), "2026-03-20", "2026-03-24", int64(0)).Return(int64(1), nil)

		_, err := svc.CreateContract(ctx, CreateContractInput{
			VehicleID: 5, CustomerID: 9, BranchID: 1,
			StartDate: "2026-03-20", EndDate: "2026-03-24", CreatedBy: 3,
		})
		assert.True(t, domain.IsCode(err, domain.ErrCodeVehicleUnavailable))
		store.contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("VehicleInMaintenanceRejected", func(t *testing.T) {
		store := newMockStore()
		svc := newRentalService(store, NewNopNotifier())

		vehicle := availableVehicle()
		vehicle.Status = domain.VehicleStatusMaintenance
		store.customers.On("Exists", ctx, int64(9)).Return(true, nil)
		store.vehicles.On("GetForUpdate", ctx, int64(5)).Return(vehicle, nil)

		_, err := svc.CreateContract(ctx, CreateContractInput{
			VehicleID: 5, CustomerID: 9, BranchID: 1,
			StartDate: "2026-03-20", EndDate: "2026-03-24", CreatedBy: 3,
		})
		assert.True(t, domain.IsCode(err, domain.ErrCodeVehicleUnavailable))
	})

	t.Run("UnknownCustomer", func(t *testing.T) {
		store := newMockStore()
		svc := newRentalService(store, NewNopNotifier())

		store.customers.On("Exists", ctx, int64(9)).Return(false, nil)

		_, err := svc.CreateContract(ctx, CreateContractInput{
			VehicleID: 5, CustomerID: 9, BranchID: 1,
			StartDate: "2026-03-20", EndDate: "2026-03-24", CreatedBy: 3,
		})
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		store := newMockStore()
		svc := newRentalService(store, NewNopNotifier())

		_, err := svc.CreateContract(ctx, CreateContractInput{
			VehicleID: 5, CustomerID: 9, BranchID: 1,
			StartDate: "2026-03-24", EndDate: "2026-03-20", CreatedBy: 3,
		})
		assert.True(t, domain.IsCode(err, domain.ErrCodeInvalidInterval))
	})
}

func TestConfirmContract(t *testing.T) {
	ctx := context.Background()

	t.Run("FromPending", func(t *testing.T) {
		store := newMockStore()
		notifier := newRecordingNotifier()
		svc := newRentalService(store, notifier)

		store.contracts.On("GetForUpdate", ctx, int64(42)).
			Return(&domain.Contract{ID: 42, Status: domain.ContractStatusPending}, nil)
		store.contracts.On("Update", ctx, mock.MatchedBy(func(c *domain.Contract) bool {
			return c.Status == domain.ContractStatusConfirmed && c.ConfirmedBy != nil && *c.ConfirmedBy == 3
		})).Return(nil)

		contract, err := svc.ConfirmContract(ctx, 42, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractStatusConfirmed, contract.Status)
		assert.Equal(t, 1, notifier.count("confirmed"))
	})

	t.Run("FromActiveRejected", func(t *testing.T) {
		store := newMockStore()
		svc := newRentalService(store, NewNopNotifier())

		store.contracts.On("GetForUpdate", ctx, int64(42)).
			Return(&domain.Contract{ID: 42, Status: domain.ContractStatusActive}, nil)

		_, err := svc.ConfirmContract(ctx, 42, 3)
		assert.True(t, domain.IsCode(err, domain.ErrCodeInvalidTransition))
	})
}

func TestActivateContract(t *testing.T) {
	ctx := context.Background()

	t.Run("MarksVehicleRented", func(t *testing.T) {
		store := newMockStore()
		notifier := newRecordingNotifier()
		svc := newRentalService(store, notifier)

		store.contracts.On("GetForUpdate", ctx, int64(42)).
			Return(&domain.Contract{ID: 42, VehicleID: 5, Status: domain.ContractStatusConfirmed}, nil)
		store.contracts.On("Update", ctx, mock.AnythingOfType("*domain.Contract")).Return(nil)
		store.vehicles.On("SetStatus", ctx, int64(5), domain.VehicleStatusRented, mock.MatchedBy(func(id *int64) bool {
			return id != nil && *id == 42
		})).Return(nil)

		contract, err := svc.ActivateContract(ctx, 42, 3, domain.ConditionSnapshot{OdometerKM: 48210, FuelLevel: 80, Notes: "scratch on rear bumper"})
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractStatusActive, contract.Status)
		assert.Equal(t, int32(48210), *contract.PickupOdometerKM)
		assert.Equal(t, int32(80), *contract.PickupFuelLevel)
		assert.Equal(t, "scratch on rear bumper", contract.PickupCondition)
		assert.Equal(t, 1, notifier.count("activated"))
		store.vehicles.AssertExpectations(t)
	})

	t.Run("FromPendingRejected", func(t *testing.T) {
		store := newMockStore()
		svc := newRentalService(store, NewNopNotifier())

		store.contracts.On("GetForUpdate", ctx, int64(42)).
			Return(&domain.Contract{ID: 42, Status: domain.ContractStatusPending}, nil)

		_, err := svc.ActivateContract(ctx, 42, 3, domain.ConditionSnapshot{})
		assert.True(t, domain.IsCode(err, domain.ErrCodeInvalidTransition))
		store.vehicles.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCompleteContract(t *testing.T) {
	ctx := context.Background()

	t.Run("ReleasesVehicle", func(t *testing.T) {
		store := newMockStore()
		notifier := newRecordingNotifier()
		svc := newRentalService(store, notifier)

		store.contracts.On("GetForUpdate", ctx, int64(42)).
			Return(&domain.Contract{ID: 42, VehicleID: 5, Status: domain.ContractStatusActive, StartDate: "2026-03-20", EndDate: "2026-03-24"}, nil)
		store.contracts.On("Update", ctx, mock.AnythingOfType("*domain.Contract")).Return(nil)
		store.vehicles.On("SetStatus", ctx, int64(5), domain.VehicleStatusAvailable, (*int64)(nil)).Return(nil)

		contract, err := svc.CompleteContract(ctx, 42, 3, "2026-03-24", domain.ConditionSnapshot{OdometerKM: 48950, FuelLevel: 60})
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractStatusCompleted, contract.Status)
		assert.Equal(t, "2026-03-24", *contract.ReturnDate)
		assert.Equal(t, int64(3), *contract.CompletedBy)
		assert.Equal(t, 1, notifier.count("completed"))
		store.vehicles.AssertExpectations(t)
	})

	t.Run("FromExtended", func(t *testing.T) {
		store := newMockStore()
		svc := newRentalService(store, NewNopNotifier())

		store.contracts.On("GetForUpdate", ctx, int64(42)).
			Return(&domain.Contract{ID: 42, VehicleID: 5, Status: domain.ContractStatusExtended, StartDate: "2026-03-20", EndDate: "2026-03-28"}, nil)
		store.contracts.On("Update", ctx, mock.AnythingOfType("*domain.Contract")).Return(nil)
		store.vehicles.On("SetStatus", ctx, int64(5), domain.VehicleStatusAvailable, (*int64)(nil)).Return(nil)

		contract, err := svc.CompleteContract(ctx, 42, 3, "2026-03-27", domain.ConditionSnapshot{})
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractStatusCompleted, contract.Status)
	})

	t.Run("ReturnBeforeStartRejected", func(t *testing.T) {
		store := newMockStore()
		svc := newRentalService(store, NewNopNotifier())

		store.contracts.On("GetForUpdate", ctx, int64(42)).
			Return(&domain.Contract{ID: 42, Status: domain.ContractStatusActive, StartDate: "2026-03-20", EndDate: "2026-03-24"}, nil)

		_, err := svc.CompleteContract(ctx, 42, 3, "2026-03-19", domain.ConditionSnapshot{})
		assert.True(t, domain.IsCode(err, domain.ErrCodeInvalidInterval))
	})

	t.Run("FromPendingRejected", func(t *testing.T) {
		store := newMockStore()
		svc := newRentalService(store, NewNopNotifier())

		store.contracts.On("GetForUpdate", ctx, int64(42)).
			Return(&domain.Contract{ID: 42, Status: domain.ContractStatusPending, StartDate: "2026-03-20"}, nil)

		_, err := svc.CompleteContract(ctx, 42, 3, "2026-03-24", domain.ConditionSnapshot{})
		assert.True(t, domain.IsCode(err, domain.ErrCodeInvalidTransition))
	})
}

func TestCancelContract(t *testing.T) {
	ctx := context.Background()

	t.Run("FromPendingLeavesVehicleAlone", func(t *testing.T) {
		store := newMockStore()
		notifier := newRecordingNotifier()
		svc := newRentalService(store, notifier)

		store.contracts.On("GetForUpdate", ctx, int64(42)).
			Return(&domain.Contract{ID: 42, VehicleID: 5, Status: domain.ContractStatusPending}, nil)
		store.contracts.On("Update", ctx, mock.MatchedBy(func(c *domain.Contract) bool {
			return c.Status == domain.ContractStatusCancelled && c.CancelReason == "customer no-show"
		})).Return(nil)

		contract, err := svc.CancelContract(ctx, 42, 3, "customer no-show")
		assert.NoError(t, err)
		assert.Equal(t, domain.ContractStatusCancelled, contract.Status)
		assert.Equal(t, 1, notifier.count("cancelled"))
		store.vehicles.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FromActiveReleasesVehicle", func(t *testing.T) {
		store := newMockStore()
		svc := newRentalService(store, NewNopNotifier())

		store.contracts.On("GetForUpdate", ctx, int64(42)).
			Return(&domain.Contract{ID: 42, VehicleID: 5, Status: domain.ContractStatusActive}, nil)
		store.contracts.On("Update", ctx, mock.AnythingOfType("*domain.Contract")).Return(nil)
		store.vehicles.On("SetStatus", ctx, int64(5), domain.VehicleStatusAvailable, (*int64)(nil)).Return(nil)

		_, err := svc.CancelContract(ctx, 42, 3, "accident report")
		assert.NoError(t, err)
		store.vehicles.AssertExpectations(t)
	})

	t.Run("FromExtendedRejected", func(t *testing.T) {
		store := newMockStore()
		svc := newRentalService(store, NewNopNotifier())

		store.contracts.On("GetForUpdate", ctx, int64(42)).
			Return(&domain.Contract{ID: 42, Status: domain.ContractStatusExtended}, nil)

		_, err := svc.CancelContract(ctx, 42, 3, "too late")
		assert.True(t, domain.IsCode(err, domain.ErrCodeInvalidTransition))
	})
}

func TestListOverdueContracts(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsToToday", func(t *testing.T) {
		store := newMockStore()
		svc := newRentalService(store, NewNopNotifier())

		store.contracts.On("ListOverdue", ctx, "2026-03-15").
			Return([]domain.ContractListItem{{Contract: domain.Contract{ID: 42}}}, nil)

		items, err := svc.ListOverdueContracts(ctx, "")
		assert.NoError(t, err)
		assert.Len(t, items, 1)
		store.contracts.AssertExpectations(t)
	})

	t.Run("ExplicitDate", func(t *testing.T) {
		store := newMockStore()
		svc := newRentalService(store, NewNopNotifier())

		store.contracts.On("ListOverdue", ctx, "2026-04-01").Return([]domain.ContractListItem{}, nil)

		items, err := svc.ListOverdueContracts(ctx, "2026-04-01")
		assert.NoError(t, err)
		assert.Empty(t, items)
	})
}
