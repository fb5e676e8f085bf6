package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Extension amends its contract's end date. The original end day is already
// paid for, so extension days exclude it.
type Extension struct {
	ID              int64           `json:"id"`
	ContractID      int64           `json:"contract_id"`
	OriginalEndDate string          `json:"original_end_date"`
	NewEndDate      string          `json:"new_end_date"`
	ExtensionDays   int32           `json:"extension_days"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	ApprovedBy      int64           `json:"approved_by"`
	CreatedOn       time.Time       `json:"created_on"`
}
