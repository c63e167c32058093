package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"smartpark/shared/timezone"
	"time"

	"github.com/google/uuid"
)

const (
	TableName  = "admin_logs"
	EntityName = "audit"

	FieldID = "log_id"
)

const (
	ActionManualEntry     = "ManualEntry"
	ActionManualExit      = "ManualExit"
	ActionSlotFlagUp      = "SlotFlagUp"
	ActionSlotFlagDown    = "SlotFlagDown"
	ActionViewSlotStatus  = "ViewSlotStatus"
	ActionViewAlerts      = "ViewAlerts"
	ActionViewVehicleLogs = "ViewVehicleLogs"
	ActionViewOccupancy   = "ViewOccupancy"
)

// Details is stored as JSONB.
type Details map[string]any

func (d Details) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit details: %w", err)
	}

	return raw, nil
}

func (d *Details) Scan(src any) error {
	var raw []byte

	switch v := src.(type) {
	case nil:
		*d = Details{}

		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported audit details type")
	}

	return json.Unmarshal(raw, d)
}

type Log struct {
	ID             string    `db:"log_id"`
	LogDate        string    `db:"log_date"`
	EventTimestamp time.Time `db:"event_timestamp"`
	Action         string    `db:"action"`
	Actor          string    `db:"actor"`
	Details        Details   `db:"details"`
}

func New(action, actor string, details Details, at time.Time) Log {
	return Log{
		ID:             uuid.NewString(),
		LogDate:        timezone.Day(at),
		EventTimestamp: at,
		Action:         action,
		Actor:          actor,
		Details:        details,
	}
}
