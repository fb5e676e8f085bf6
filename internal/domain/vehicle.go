package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusRented      VehicleStatus = "RENTED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
)

type Vehicle struct {
	ID                int64           `json:"id"`
	BranchID          int64           `json:"branch_id"`
	PlateNumber       string          `json:"plate_number"`
	Make              string          `json:"make"`
	Model             string          `json:"model"`
	Year              int32           `json:"year"`
	Status            VehicleStatus   `json:"status"`
	DailyRate         decimal.Decimal `json:"daily_rate"`
	DriverDailyRate   decimal.Decimal `json:"driver_daily_rate"`
	CurrentContractID *int64          `json:"current_contract_id,omitempty"`
	CreatedOn         time.Time       `json:"created_on"`
	UpdatedOn         time.Time       `json:"updated_on"`
}
