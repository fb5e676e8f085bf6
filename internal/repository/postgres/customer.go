package postgres

import (
	"context"
	"database/sql"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type customerRepository struct {
	q DBTX
}

func NewCustomerRepository(q DBTX) repository.CustomerRepository {
	return &customerRepository{q: q}
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	query := `SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(license_no, ''), created_on
	          FROM customers WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.LicenseNo, &c.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("customer", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}
