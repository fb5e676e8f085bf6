package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/pricing"
	"fleetrent-backend/internal/repository"
)

type contractRepository struct {
	q DBTX
}

func NewContractRepository(q DBTX) repository.ContractRepository {
	return &contractRepository{q: q}
}

const contractColumns = `id, contract_number, vehicle_id, customer_id, branch_id, start_date, end_date, return_date,
	daily_rate, driver_daily_rate, with_driver, duration_days, total_amount, deposit_amount, paid_amount,
	remaining_amount, payment_status, pickup_odometer_km, pickup_fuel_level, COALESCE(pickup_condition, ''),
	return_odometer_km, return_fuel_level, COALESCE(return_condition, ''), status, COALESCE(cancel_reason, ''),
	created_by, confirmed_by, completed_by, created_on, updated_on`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (*domain.Contract, error) {
	var c domain.Contract
	var start, end time.Time
	var returned sql.NullTime
	err := row.Scan(&c.ID, &c.ContractNumber, &c.VehicleID, &c.CustomerID, &c.BranchID, &start, &end, &returned,
		&c.DailyRate, &c.DriverDailyRate, &c.WithDriver, &c.DurationDays, &c.TotalAmount, &c.DepositAmount,
		&c.PaidAmount, &c.RemainingAmount, &c.PaymentStatus, &c.PickupOdometerKM, &c.PickupFuelLevel, &c.PickupCondition,
		&c.ReturnOdometerKM, &c.ReturnFuelLevel, &c.ReturnCondition, &c.Status, &c.CancelReason,
		&c.CreatedBy, &c.ConfirmedBy, &c.CompletedBy, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	c.StartDate = start.Format(pricing.DateLayout)
	c.EndDate = end.Format(pricing.DateLayout)
	if returned.Valid {
		d := returned.Time.Format(pricing.DateLayout)
		c.ReturnDate = &d
	}
	return &c, nil
}

func (r *contractRepository) Create(ctx context.Context, c *domain.Contract) error {
	query := `INSERT INTO contracts (contract_number, vehicle_id, customer_id, branch_id, start_date, end_date,
	            daily_rate, driver_daily_rate, with_driver, duration_days, total_amount, deposit_amount,
	            paid_amount, remaining_amount, payment_status, status, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	          RETURNING id`
	now := time.Now()
	c.CreatedOn = now
	c.UpdatedOn = now
	return r.q.QueryRowContext(ctx, query,
		c.ContractNumber, c.VehicleID, c.CustomerID, c.BranchID, c.StartDate, c.EndDate,
		c.DailyRate, c.DriverDailyRate, c.WithDriver, c.DurationDays, c.TotalAmount, c.DepositAmount,
		c.PaidAmount, c.RemainingAmount, c.PaymentStatus, c.Status, c.CreatedBy, now, now,
	).Scan(&c.ID)
}

func (r *contractRepository) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	c, err := scanContract(r.q.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("contract", id)
	}
	return c, err
}

func (r *contractRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1 FOR UPDATE`
	c, err := scanContract(r.q.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("contract", id)
	}
	return c, err
}

func (r *contractRepository) Update(ctx context.Context, c *domain.Contract) error {
	query := `UPDATE contracts SET end_date=$1, return_date=$2, duration_days=$3, total_amount=$4,
	            deposit_amount=$5, paid_amount=$6, remaining_amount=$7, payment_status=$8,
	            pickup_odometer_km=$9, pickup_fuel_level=$10, pickup_condition=$11,
	            return_odometer_km=$12, return_fuel_level=$13, return_condition=$14,
	            status=$15, cancel_reason=$16, confirmed_by=$17, completed_by=$18, updated_on=$19
	          WHERE id=$20`
	now := time.Now()
	res, err := r.q.ExecContext(ctx, query,
		c.EndDate, c.ReturnDate, c.DurationDays, c.TotalAmount,
		c.DepositAmount, c.PaidAmount, c.RemainingAmount, c.PaymentStatus,
		c.PickupOdometerKM, c.PickupFuelLevel, c.PickupCondition,
		c.ReturnOdometerKM, c.ReturnFuelLevel, c.ReturnCondition,
		c.Status, c.CancelReason, c.ConfirmedBy, c.CompletedBy, now, c.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NewNotFound("contract", c.ID)
	}
	c.UpdatedOn = now
	return nil
}

func (r *contractRepository) NextNumberSeq(ctx context.Context, prefix string) (int32, error) {
	var seq int32
	query := `SELECT COUNT(*) + 1 FROM contracts WHERE contract_number LIKE $1 || '%'`
	err := r.q.QueryRowContext(ctx, query, prefix).Scan(&seq)
	return seq, err
}

func (r *contractRepository) CountOverlapping(ctx context.Context, vehicleID int64, startDate, endDate string, excludeContractID int64) (int64, error) {
	// Closed-interval overlap: an existing contract collides when it starts on
	// or before the candidate end and ends on or after the candidate start.
	query := `SELECT COUNT(*) FROM contracts
	          WHERE vehicle_id = $1
	            AND status NOT IN ('COMPLETED', 'CANCELLED')
	            AND start_date <= $3
	            AND end_date >= $2
	            AND ($4 = 0 OR id <> $4)`
	var count int64
	err := r.q.QueryRowContext(ctx, query, vehicleID, startDate, endDate, excludeContractID).Scan(&count)
	return count, err
}

const listColumns = `c.id, c.contract_number, c.vehicle_id, c.customer_id, c.branch_id, c.start_date, c.end_date, c.return_date,
	c.daily_rate, c.driver_daily_rate, c.with_driver, c.duration_days, c.total_amount, c.deposit_amount, c.paid_amount,
	c.remaining_amount, c.payment_status, c.pickup_odometer_km, c.pickup_fuel_level, COALESCE(c.pickup_condition, ''),
	c.return_odometer_km, c.return_fuel_level, COALESCE(c.return_condition, ''), c.status, COALESCE(c.cancel_reason, ''),
	c.created_by, c.confirmed_by, c.completed_by, c.created_on, c.updated_on,
	cu.name, COALESCE(cu.email, ''), v.make, v.model, v.year, v.plate_number, b.name`

const listJoins = ` FROM contracts c
	JOIN customers cu ON cu.id = c.customer_id
	JOIN vehicles v ON v.id = c.vehicle_id
	JOIN branches b ON b.id = c.branch_id`

func scanListItem(row rowScanner) (*domain.ContractListItem, error) {
	var item domain.ContractListItem
	var start, end time.Time
	var returned sql.NullTime
	var vehicleMake, vehicleModel string
	var year int32
	err := row.Scan(&item.ID, &item.ContractNumber, &item.VehicleID, &item.CustomerID, &item.BranchID, &start, &end, &returned,
		&item.DailyRate, &item.DriverDailyRate, &item.WithDriver, &item.DurationDays, &item.TotalAmount, &item.DepositAmount,
		&item.PaidAmount, &item.RemainingAmount, &item.PaymentStatus, &item.PickupOdometerKM, &item.PickupFuelLevel, &item.PickupCondition,
		&item.ReturnOdometerKM, &item.ReturnFuelLevel, &item.ReturnCondition, &item.Status, &item.CancelReason,
		&item.CreatedBy, &item.ConfirmedBy, &item.CompletedBy, &item.CreatedOn, &item.UpdatedOn,
		&item.CustomerName, &item.CustomerEmail, &vehicleMake, &vehicleModel, &year, &item.PlateNumber, &item.BranchName)
	if err != nil {
		return nil, err
	}
	item.StartDate = start.Format(pricing.DateLayout)
	item.EndDate = end.Format(pricing.DateLayout)
	if returned.Valid {
		d := returned.Time.Format(pricing.DateLayout)
		item.ReturnDate = &d
	}
	item.VehicleLabel = fmt.Sprintf("%s %s %d", vehicleMake, vehicleModel, year)
	return &item, nil
}

func (r *contractRepository) List(ctx context.Context, f repository.ContractFilter, page, pageSize int32) ([]domain.ContractListItem, int32, error) {
	where := " WHERE 1=1"
	args := []any{}
	argIdx := 1
	if f.Status != "" {
		where += fmt.Sprintf(" AND c.status = $%d", argIdx)
		args = append(args, f.Status)
		argIdx++
	}
	if f.VehicleID != 0 {
		where += fmt.Sprintf(" AND c.vehicle_id = $%d", argIdx)
		args = append(args, f.VehicleID)
		argIdx++
	}
	if f.CustomerID != 0 {
		where += fmt.Sprintf(" AND c.customer_id = $%d", argIdx)
		args = append(args, f.CustomerID)
		argIdx++
	}
	if f.BranchID != 0 {
		where += fmt.Sprintf(" AND c.branch_id = $%d", argIdx)
		args = append(args, f.BranchID)
		argIdx++
	}
	if f.FromDate != "" {
		where += fmt.Sprintf(" AND c.end_date >= $%d", argIdx)
		args = append(args, f.FromDate)
		argIdx++
	}
	if f.ToDate != "" {
		where += fmt.Sprintf(" AND c.start_date <= $%d", argIdx)
		args = append(args, f.ToDate)
		argIdx++
	}

	var count int32
	countQuery := "SELECT COUNT(*) FROM contracts c" + where
	if err := r.q.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	query := "SELECT " + listColumns + listJoins + where +
		fmt.Sprintf(" ORDER BY c.created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.ContractListItem
	for rows.Next() {
		item, err := scanListItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	return items, count, rows.Err()
}

func (r *contractRepository) GetDetail(ctx context.Context, id int64) (*domain.ContractListItem, error) {
	query := "SELECT " + listColumns + listJoins + " WHERE c.id = $1"
	item, err := scanListItem(r.q.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("contract", id)
	}
	return item, err
}

func (r *contractRepository) ListOverdue(ctx context.Context, asOf string) ([]domain.ContractListItem, error) {
	query := "SELECT " + listColumns + listJoins +
		` WHERE c.status IN ('ACTIVE', 'EXTENDED') AND c.end_date < $1 ORDER BY c.end_date ASC`
	rows, err := r.q.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ContractListItem
	for rows.Next() {
		item, err := scanListItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
