package model

import (
	"smartpark/shared/timezone"
	"time"

	"github.com/google/uuid"
)

const (
	TableName  = "parking_sessions"
	EntityName = "session"

	FieldID        = "session_id"
	FieldDate      = "log_date"
	FieldSlotID    = "parking_id"
	FieldVehicleID = "vehicle_id"
	FieldExitTime  = "exit_timestamp"
	FieldEntryTime = "entry_timestamp"
	FieldDuration  = "duration_minutes"
)

// SortableFields may be used as sort_by on the session listing.
var SortableFields = []string{FieldExitTime, FieldEntryTime, FieldDuration, FieldVehicleID, FieldSlotID}

// Session is one completed occupancy. It is written once and never updated.
type Session struct {
	ID              string    `db:"session_id"`
	Date            string    `db:"log_date"`
	SlotID          string    `db:"parking_id"`
	VehicleID       string    `db:"vehicle_id"`
	HolderContact   string    `db:"email"`
	Area            int       `db:"area_number"`
	Floor           int       `db:"floor_number"`
	EntryTime       time.Time `db:"entry_timestamp"`
	ExitTime        time.Time `db:"exit_timestamp"`
	DurationMinutes int       `db:"duration_minutes"`
}

// Record describes the occupancy being closed.
type Record struct {
	SlotID          string
	VehicleID       string
	HolderContact   string
	Area            int
	Floor           int
	EntryTime       time.Time
	ExitTime        time.Time
	DurationMinutes int
}

// New assigns the session id and the partition day of the exit.
func New(r Record) Session {
	return Session{
		ID:              uuid.NewString(),
		Date:            timezone.Day(r.ExitTime),
		SlotID:          r.SlotID,
		VehicleID:       r.VehicleID,
		HolderContact:   r.HolderContact,
		Area:            r.Area,
		Floor:           r.Floor,
		EntryTime:       r.EntryTime,
		ExitTime:        r.ExitTime,
		DurationMinutes: r.DurationMinutes,
	}
}
