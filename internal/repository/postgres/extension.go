package postgres

import (
	"context"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/pricing"
	"fleetrent-backend/internal/repository"
)

type extensionRepository struct {
	q DBTX
}

func NewExtensionRepository(q DBTX) repository.ExtensionRepository {
	return &extensionRepository{q: q}
}

func (r *extensionRepository) Create(ctx context.Context, e *domain.Extension) error {
	query := `INSERT INTO extensions (contract_id, original_end_date, new_end_date, extension_days, amount, payment_status, approved_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	e.CreatedOn = now
	return r.q.QueryRowContext(ctx, query,
		e.ContractID, e.OriginalEndDate, e.NewEndDate, e.ExtensionDays, e.Amount, e.PaymentStatus, e.ApprovedBy, now,
	).Scan(&e.ID)
}

func (r *extensionRepository) ListByContract(ctx context.Context, contractID int64) ([]domain.Extension, error) {
	query := `SELECT id, contract_id, original_end_date, new_end_date, extension_days, amount, payment_status, approved_by, created_on
	          FROM extensions WHERE contract_id = $1 ORDER BY created_on ASC`
	rows, err := r.q.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extensions []domain.Extension
	for rows.Next() {
		var e domain.Extension
		var original, next time.Time
		if err := rows.Scan(&e.ID, &e.ContractID, &original, &next, &e.ExtensionDays, &e.Amount, &e.PaymentStatus, &e.ApprovedBy, &e.CreatedOn); err != nil {
			return nil, err
		}
		e.OriginalEndDate = original.Format(pricing.DateLayout)
		e.NewEndDate = next.Format(pricing.DateLayout)
		extensions = append(extensions, e)
	}
	return extensions, rows.Err()
}
