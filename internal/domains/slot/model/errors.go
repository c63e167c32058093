package model

import (
	"fmt"
	"net/http"
	"smartpark/shared/failure"
)

var (
	ErrAlreadyParked     = &failure.Failure{Code: http.StatusConflict, Message: "vehicle is already parked"}
	ErrNoAvailableSlot   = &failure.Failure{Code: http.StatusConflict, Message: "no available slot"}
	ErrSlotContention    = &failure.Failure{Code: http.StatusConflict, Message: "slot was just taken, please retry"}
	ErrNotOccupied       = &failure.Failure{Code: http.StatusConflict, Message: "slot is not occupied"}
	ErrNoActiveSession   = &failure.Failure{Code: http.StatusNotFound, Message: "no active parking session for vehicle"}
	ErrInvalidInput      = &failure.Failure{Code: http.StatusBadRequest, Message: "invalid input"}
	ErrStoreUnavailable  = &failure.Failure{Code: http.StatusServiceUnavailable, Message: "slot store unavailable"}
	ErrSlotNotFound      = &failure.Failure{Code: http.StatusNotFound, Message: "slot not found"}
	ErrInvalidTransition = &failure.Failure{Code: http.StatusConflict, Message: "invalid slot transition"}
)

// StoreUnavailable marks err as an infrastructure failure. It is the only kind safe to retry.
func StoreUnavailable(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// InvalidInput wraps a description of a malformed field.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
