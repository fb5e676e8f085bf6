// Package pricing computes contract durations and money amounts. All amounts
// are decimal; the functions here are pure so every caller recomputes the
// same numbers from the same inputs.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/domain"
)

// DateLayout is the calendar-date wire format used across the back office.
const DateLayout = "2006-01-02"

var oneHundred = decimal.NewFromInt(100)

// ParseDate parses a yyyy-mm-dd date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, domain.NewInvalidInterval("date", "expected yyyy-mm-dd, got "+s)
	}
	return t, nil
}

// DurationDays returns the rental duration between two dates, counting both
// endpoints. A one-day rental starts and ends on the same date.
func DurationDays(startDate, endDate string) (int32, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, domain.NewInvalidInterval("start_date", "expected yyyy-mm-dd, got "+startDate)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, domain.NewInvalidInterval("end_date", "expected yyyy-mm-dd, got "+endDate)
	}
	if end.Before(start) {
		return 0, domain.NewInvalidInterval("end_date", "end date must not be before start date")
	}
	return int32(end.Sub(start).Hours()/24) + 1, nil
}

// ExtensionDays returns the number of billable days added by moving a
// contract's end date. The current end day is already paid for, so the count
// excludes it; newEndDate must be strictly after currentEndDate.
func ExtensionDays(currentEndDate, newEndDate string) (int32, error) {
	current, err := ParseDate(currentEndDate)
	if err != nil {
		return 0, err
	}
	next, err := ParseDate(newEndDate)
	if err != nil {
		return 0, domain.NewInvalidInterval("new_end_date", "expected yyyy-mm-dd, got "+newEndDate)
	}
	days := int32(next.Sub(current).Hours() / 24)
	if days <= 0 {
		return 0, domain.NewInvalidInterval("new_end_date", "new end date must be after the current end date")
	}
	return days, nil
}

// AddDays shifts a date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// EffectiveDailyRate is the per-day price of a contract: the vehicle rate
// plus the driver rate when the rental is with driver.
func EffectiveDailyRate(dailyRate, driverDailyRate decimal.Decimal, withDriver bool) decimal.Decimal {
	if withDriver {
		return dailyRate.Add(driverDailyRate)
	}
	return dailyRate
}

// DerivePaymentStatus classifies a contract by paid-versus-total amount.
// Overpayment still reads as PAID; the ledger never rejects it.
func DerivePaymentStatus(paid, total decimal.Decimal) domain.PaymentStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return domain.PaymentStatusPending
	case paid.GreaterThanOrEqual(total):
		return domain.PaymentStatusPaid
	default:
		return domain.PaymentStatusPartial
	}
}

// Input holds everything a quote needs. Deposit percent is passed explicitly;
// this package never reads configuration.
type Input struct {
	DailyRate       decimal.Decimal
	DriverDailyRate decimal.Decimal
	WithDriver      bool
	StartDate       string
	EndDate         string
	DepositPercent  decimal.Decimal
	PaidAmount      decimal.Decimal
}

// Quote is the derived financial state of a contract.
type Quote struct {
	DurationDays    int32
	TotalAmount     decimal.Decimal
	DepositAmount   decimal.Decimal
	RemainingAmount decimal.Decimal
	PaymentStatus   domain.PaymentStatus
}

// Compute prices a date interval. Recomputing with unchanged inputs yields an
// identical quote.
func Compute(in Input) (Quote, error) {
	days, err := DurationDays(in.StartDate, in.EndDate)
	if err != nil {
		return Quote{}, err
	}
	if in.DailyRate.IsNegative() || in.DriverDailyRate.IsNegative() {
		return Quote{}, domain.NewInvalidAmount("daily_rate", "rates must not be negative")
	}
	if in.DepositPercent.IsNegative() {
		return Quote{}, domain.NewInvalidAmount("deposit_percent", "deposit percent must not be negative")
	}

	total := EffectiveDailyRate(in.DailyRate, in.DriverDailyRate, in.WithDriver).Mul(decimal.NewFromInt32(days))
	deposit := total.Mul(in.DepositPercent).Div(oneHundred).Round(2)

	return Quote{
		DurationDays:    days,
		TotalAmount:     total,
		DepositAmount:   deposit,
		RemainingAmount: total.Sub(in.PaidAmount),
		PaymentStatus:   DerivePaymentStatus(in.PaidAmount, total),
	}, nil
}
