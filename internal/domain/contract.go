package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractStatus string

const (
	ContractStatusPending   ContractStatus = "PENDING"
	ContractStatusConfirmed ContractStatus = "CONFIRMED"
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusExtended  ContractStatus = "EXTENDED"
	ContractStatusCompleted ContractStatus = "COMPLETED"
	ContractStatusCancelled ContractStatus = "CANCELLED"
)

// contractTransitions is the closed transition table for the contract state
// machine. A status missing a target here cannot reach it, full stop.
var contractTransitions = map[ContractStatus][]ContractStatus{
	ContractStatusPending:   {ContractStatusConfirmed, ContractStatusCancelled},
	ContractStatusConfirmed: {ContractStatusActive, ContractStatusCancelled},
	ContractStatusActive:    {ContractStatusExtended, ContractStatusCompleted, ContractStatusCancelled},
	ContractStatusExtended:  {ContractStatusExtended, ContractStatusCompleted},
	ContractStatusCompleted: {},
	ContractStatusCancelled: {},
}

// Terminal reports whether the status can never change again. Terminal
// contracts do not block a vehicle's calendar.
func (s ContractStatus) Terminal() bool {
	return s == ContractStatusCompleted || s == ContractStatusCancelled
}

// CanTransitionTo consults the transition table.
func (s ContractStatus) CanTransitionTo(next ContractStatus) bool {
	for _, allowed := range contractTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Contract struct {
	ID             int64  `json:"id"`
	ContractNumber string `json:"contract_number"`
	VehicleID      int64  `json:"vehicle_id"`
	CustomerID     int64  `json:"customer_id"`
	BranchID       int64  `json:"branch_id"`

	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	ReturnDate *string `json:"return_date,omitempty"`

	// Rate snapshot fields, copied from the vehicle at contract creation.
	// Later catalog price changes never alter an existing contract.
	DailyRate       decimal.Decimal `json:"daily_rate"`
	DriverDailyRate decimal.Decimal `json:"driver_daily_rate"`
	WithDriver      bool            `json:"with_driver"`

	DurationDays    int32           `json:"duration_days"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DepositAmount   decimal.Decimal `json:"deposit_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`

	PickupOdometerKM *int32 `json:"pickup_odometer_km,omitempty"`
	PickupFuelLevel  *int32 `json:"pickup_fuel_level,omitempty"`
	PickupCondition  string `json:"pickup_condition"`
	ReturnOdometerKM *int32 `json:"return_odometer_km,omitempty"`
	ReturnFuelLevel  *int32 `json:"return_fuel_level,omitempty"`
	ReturnCondition  string `json:"return_condition"`

	Status       ContractStatus `json:"status"`
	CancelReason string         `json:"cancel_reason"`
	CreatedBy    int64          `json:"created_by"`
	ConfirmedBy  *int64         `json:"confirmed_by,omitempty"`
	CompletedBy  *int64         `json:"completed_by,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// ConditionSnapshot records a vehicle's state at pickup or return time.
type ConditionSnapshot struct {
	OdometerKM int32  `json:"odometer_km"`
	FuelLevel  int32  `json:"fuel_level"`
	Notes      string `json:"notes"`
}

// ContractListItem is a contract row joined with display fields for list
// and report screens.
type ContractListItem struct {
	Contract
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	VehicleLabel  string `json:"vehicle_label"`
	PlateNumber   string `json:"plate_number"`
	BranchName    string `json:"branch_name"`
}

// ContractDetail bundles a contract with its payment and extension history.
type ContractDetail struct {
	ContractListItem
	Payments   []Payment   `json:"payments"`
	Extensions []Extension `json:"extensions"`
}
