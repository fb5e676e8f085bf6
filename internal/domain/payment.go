package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

type PaymentType string

const (
	PaymentTypeRental  PaymentType = "RENTAL"
	PaymentTypeDeposit PaymentType = "DEPOSIT"
	PaymentTypeFine    PaymentType = "FINE"
	PaymentTypeRefund  PaymentType = "REFUND"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeRental, PaymentTypeDeposit, PaymentTypeFine, PaymentTypeRefund:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	}
	return false
}

type Payment struct {
	ID          int64           `json:"id"`
	ContractID  int64           `json:"contract_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        PaymentType     `json:"type"`
	Method      PaymentMethod   `json:"method"`
	PaymentDate string          `json:"payment_date"`
	ReferenceNo string          `json:"reference_no"`
	RecordedBy  int64           `json:"recorded_by"`
	CreatedOn   time.Time       `json:"created_on"`
}
