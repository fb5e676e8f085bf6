package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/repository"
)

type settingsRepository struct {
	q DBTX
}

func NewSettingsRepository(q DBTX) repository.SettingsRepository {
	return &settingsRepository{q: q}
}

const depositPercentageKey = "deposit_percentage"

func (r *settingsRepository) DepositPercentage(ctx context.Context) (decimal.Decimal, error) {
	var raw string
	err := r.q.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = $1`, depositPercentageKey).Scan(&raw)
	if err == sql.ErrNoRows {
		// No configured deposit means no deposit is collected.
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	pct, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("setting %s is not numeric: %w", depositPercentageKey, err)
	}
	return pct, nil
}
