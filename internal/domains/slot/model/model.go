package model

import (
	"time"
)

const (
	TableName  = "parking_slots"
	EntityName = "slot"

	FieldID               = "parking_id"
	FieldArea             = "area_number"
	FieldFloor            = "floor_number"
	FieldNumber           = "slot_number"
	FieldStatus           = "status"
	FieldVehicleID        = "vehicle_id"
	FieldHolderContact    = "email"
	FieldEntryTime        = "entry_timestamp"
	FieldExpectedExitTime = "expected_time"
	FieldModifiedAt       = "modified_at"

	CacheKeyOccupancy = "slot:occupancy"
)

type Status string

const (
	StatusEmpty       Status = "empty"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

func (s Status) Valid() bool {
	switch s {
	case StatusEmpty, StatusOccupied, StatusMaintenance:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// Slot is one parking space. The occupancy columns are non-nil exactly when Status is occupied.
type Slot struct {
	ID               string     `db:"parking_id"`
	Area             int        `db:"area_number"`
	Floor            int        `db:"floor_number"`
	Number           int        `db:"slot_number"`
	Status           Status     `db:"status"`
	VehicleID        *string    `db:"vehicle_id"`
	HolderContact    *string    `db:"email"`
	EntryTime        *time.Time `db:"entry_timestamp"`
	ExpectedExitTime *time.Time `db:"expected_time"`
	ModifiedAt       time.Time  `db:"modified_at"`
}

// Occupancy binds a slot to the vehicle holding it.
type Occupancy struct {
	VehicleID        string
	HolderContact    string
	EntryTime        time.Time
	ExpectedExitTime time.Time
}

// Occupancy returns the occupancy attributes and whether all of them are present.
func (s Slot) Occupancy() (Occupancy, bool) {
	if s.VehicleID == nil || s.HolderContact == nil || s.EntryTime == nil || s.ExpectedExitTime == nil {
		return Occupancy{}, false
	}

	return Occupancy{
		VehicleID:        *s.VehicleID,
		HolderContact:    *s.HolderContact,
		EntryTime:        *s.EntryTime,
		ExpectedExitTime: *s.ExpectedExitTime,
	}, true
}

// Consistent reports whether the occupancy columns agree with Status.
func (s Slot) Consistent() bool {
	_, full := s.Occupancy()
	none := s.VehicleID == nil && s.HolderContact == nil && s.EntryTime == nil && s.ExpectedExitTime == nil

	if s.Status == StatusOccupied {
		return full
	}

	return none
}

// Change is the full set of mutable columns written by one conditional update.
// A nil Occupancy clears the occupancy columns.
type Change struct {
	Status     Status
	Occupancy  *Occupancy
	ModifiedAt time.Time
}

// Apply returns s with c written over it.
func (c Change) Apply(s Slot) Slot {
	s.Status = c.Status
	s.ModifiedAt = c.ModifiedAt

	if c.Occupancy == nil {
		s.VehicleID = nil
		s.HolderContact = nil
		s.EntryTime = nil
		s.ExpectedExitTime = nil

		return s
	}

	occ := *c.Occupancy
	s.VehicleID = &occ.VehicleID
	s.HolderContact = &occ.HolderContact
	s.EntryTime = &occ.EntryTime
	s.ExpectedExitTime = &occ.ExpectedExitTime

	return s
}

// Condition must hold on the stored row for a conditional update to be applied.
// VehicleID, when set, additionally pins the current holder.
type Condition struct {
	Status    Status
	VehicleID *string
}

// Holds reports whether s satisfies c.
func (c Condition) Holds(s Slot) bool {
	if s.Status != c.Status {
		return false
	}

	if c.VehicleID == nil {
		return true
	}

	return s.VehicleID != nil && *s.VehicleID == *c.VehicleID
}

// Query selects slots through the status/location and vehicle indexes. Nil fields do not filter.
type Query struct {
	Status    *Status
	Area      *int
	Floor     *int
	VehicleID *string
}

// Matches reports whether s is selected by q.
func (q Query) Matches(s Slot) bool {
	if q.Status != nil && s.Status != *q.Status {
		return false
	}

	if q.Area != nil && s.Area != *q.Area {
		return false
	}

	if q.Floor != nil && s.Floor != *q.Floor {
		return false
	}

	if q.VehicleID != nil && (s.VehicleID == nil || *s.VehicleID != *q.VehicleID) {
		return false
	}

	return true
}
