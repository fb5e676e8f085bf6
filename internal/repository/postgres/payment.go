package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/pricing"
	"fleetrent-backend/internal/repository"
)

type paymentRepository struct {
	q DBTX
}

func NewPaymentRepository(q DBTX) repository.PaymentRepository {
	return &paymentRepository{q: q}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (contract_id, amount, payment_type, payment_method, payment_date, reference_no, recorded_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	p.CreatedOn = now
	return r.q.QueryRowContext(ctx, query,
		p.ContractID, p.Amount, p.Type, p.Method, p.PaymentDate, p.ReferenceNo, p.RecordedBy, now,
	).Scan(&p.ID)
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	var date time.Time
	err := row.Scan(&p.ID, &p.ContractID, &p.Amount, &p.Type, &p.Method, &date, &p.ReferenceNo, &p.RecordedBy, &p.CreatedOn)
	if err != nil {
		return nil, err
	}
	p.PaymentDate = date.Format(pricing.DateLayout)
	return &p, nil
}

const paymentColumns = `id, contract_id, amount, payment_type, payment_method, payment_date, COALESCE(reference_no, ''), recorded_by, created_on`

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.q.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("payment", id)
	}
	return p, err
}

func (r *paymentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NewNotFound("payment", id)
	}
	return nil
}

func (r *paymentRepository) SumByType(ctx context.Context, contractID int64, t domain.PaymentType) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE contract_id = $1 AND payment_type = $2`
	err := r.q.QueryRowContext(ctx, query, contractID, t).Scan(&sum)
	return sum, err
}

func (r *paymentRepository) ListByContract(ctx context.Context, contractID int64) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE contract_id = $1 ORDER BY payment_date ASC, id ASC`
	rows, err := r.q.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}
