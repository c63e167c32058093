package dto

import (
	"time"
)

type ReleaseResponse struct {
	SlotID          string    `json:"parking_id"`
	VehicleID       string    `json:"vehicle_id"`
	ExitTime        time.Time `json:"exit_timestamp"`
	DurationMinutes int       `json:"duration_minutes"`
}

// ExitRequest releases whatever slot the vehicle holds.
type ExitRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required,vehicle,max=20"`
}

// ManualExitRequest releases a specific slot.
type ManualExitRequest struct {
	SlotID string `json:"parking_id" validate:"required,slotid"`
}
