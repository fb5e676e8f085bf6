package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type vehicleRepository struct {
	q DBTX
}

func NewVehicleRepository(q DBTX) repository.VehicleRepository {
	return &vehicleRepository{q: q}
}

const vehicleColumns = `id, branch_id, plate_number, make, model, year, status, daily_rate, driver_daily_rate, current_contract_id, created_on, updated_on`

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(&v.ID, &v.BranchID, &v.PlateNumber, &v.Make, &v.Model, &v.Year, &v.Status,
		&v.DailyRate, &v.DriverDailyRate, &v.CurrentContractID, &v.CreatedOn, &v.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v, err := scanVehicle(r.q.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("vehicle", id)
	}
	return v, err
}

// GetForUpdate locks the vehicle row. Taking this lock before the overlap
// recheck is what closes the check-then-act race between two concurrent
// bookings for the same vehicle.
func (r *vehicleRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 FOR UPDATE`
	v, err := scanVehicle(r.q.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("vehicle", id)
	}
	return v, err
}

func (r *vehicleRepository) SetStatus(ctx context.Context, id int64, status domain.VehicleStatus, currentContractID *int64) error {
	query := `UPDATE vehicles SET status = $1, current_contract_id = $2, updated_on = $3 WHERE id = $4`
	res, err := r.q.ExecContext(ctx, query, status, currentContractID, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NewNotFound("vehicle", id)
	}
	return nil
}
