package domain

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeInvalidTransition  ErrorCode = "INVALID_TRANSITION"
	ErrCodeVehicleUnavailable ErrorCode = "VEHICLE_UNAVAILABLE"
	ErrCodeInvalidInterval    ErrorCode = "INVALID_INTERVAL"
	ErrCodeInvalidAmount      ErrorCode = "INVALID_AMOUNT"
	ErrCodeConflict           ErrorCode = "CONFLICT"
	ErrCodeInternal           ErrorCode = "INTERNAL"
)

// Error carries an error code plus the field it applies to, so callers can
// render a field-level message instead of a generic failure.
type Error struct {
	Code    ErrorCode
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFound(entity string, id int64) error {
	return &Error{Code: ErrCodeNotFound, Field: entity, Message: fmt.Sprintf("%s %d does not exist", entity, id)}
}

func NewInvalidTransition(from ContractStatus, op string) error {
	return &Error{Code: ErrCodeInvalidTransition, Field: "status", Message: fmt.Sprintf("cannot %s a contract in status %s", op, from)}
}

func NewVehicleUnavailable(vehicleID int64, startDate, endDate string) error {
	return &Error{Code: ErrCodeVehicleUnavailable, Field: "vehicle_id", Message: fmt.Sprintf("vehicle %d is not available between %s and %s", vehicleID, startDate, endDate)}
}

func NewInvalidInterval(field, msg string) error {
	return &Error{Code: ErrCodeInvalidInterval, Field: field, Message: msg}
}

func NewInvalidAmount(field, msg string) error {
	return &Error{Code: ErrCodeInvalidAmount, Field: field, Message: msg}
}

func NewConflict(field, msg string) error {
	return &Error{Code: ErrCodeConflict, Field: field, Message: msg}
}

// NewInternal wraps a storage failure as an opaque error. The original cause
// stays reachable through Unwrap for logging.
func NewInternal(err error) error {
	return &internalError{cause: err}
}

type internalError struct {
	cause error
}

func (e *internalError) Error() string {
	return fmt.Sprintf("%s: %v", ErrCodeInternal, e.cause)
}

func (e *internalError) Unwrap() error { return e.cause }

// CodeOf extracts the error code, defaulting to INTERNAL for untyped errors.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternal
}

func IsCode(err error, code ErrorCode) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}

func IsNotFound(err error) bool {
	return IsCode(err, ErrCodeNotFound)
}
