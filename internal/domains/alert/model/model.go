package model

import (
	"fmt"
	"math"
	"slices"
	slotModel "smartpark/internal/domains/slot/model"
	"time"
)

type Kind string

const (
	KindTenMinuteWarning Kind = "ten_minute_warning"
	KindFinalWarning     Kind = "final_warning"
	KindExpired          Kind = "expired"
	KindOverdueReminder  Kind = "overdue_reminder"
)

const (
	tenMinuteLow  = 9.5
	tenMinuteHigh = 10.5
	expiredWindow = 0.5
	finalLow      = 1
	finalHigh     = 3
)

// Subject is the notification subject when none is configured.
const Subject = "Smart Parking Expiry Notification"

var overdueMarks = []int{10, 20, 30}

// Alert is what one evaluation decided to send. Minutes is set for final warnings and overdue reminders.
type Alert struct {
	Kind    Kind
	Minutes int
}

// Message renders the notification body for slotID.
func (a Alert) Message(slotID string) string {
	switch a.Kind {
	case KindTenMinuteWarning:
		return fmt.Sprintf("Reminder: Your slot %s will expire in 10 minutes.", slotID)
	case KindFinalWarning:
		return fmt.Sprintf("Final warning: Your slot %s will expire in %d minutes.", slotID, a.Minutes)
	case KindExpired:
		return fmt.Sprintf("Notice: Your slot %s has now expired.", slotID)
	case KindOverdueReminder:
		return fmt.Sprintf("Reminder: Your slot %s expired %d minutes ago.", slotID, a.Minutes)
	default:
		return ""
	}
}

// EvaluateDelta applies the alert windows to delta, the signed minutes until expected exit.
// Windows are about one minute wide, so each alert fires once when evaluated every minute.
// Rounding is half to even.
func EvaluateDelta(delta float64) (Alert, bool) {
	rounded := int(math.RoundToEven(delta))

	switch {
	case delta >= tenMinuteLow && delta <= tenMinuteHigh:
		return Alert{Kind: KindTenMinuteWarning}, true
	case rounded >= finalLow && rounded <= finalHigh:
		return Alert{Kind: KindFinalWarning, Minutes: rounded}, true
	case delta >= -expiredWindow && delta <= expiredWindow:
		return Alert{Kind: KindExpired}, true
	case delta < 0:
		overdue := int(math.RoundToEven(math.Abs(delta)))
		if slices.Contains(overdueMarks, overdue) {
			return Alert{Kind: KindOverdueReminder, Minutes: overdue}, true
		}
	}

	return Alert{}, false
}

// Evaluate decides the alert for slot at now. Slots without a complete occupancy never alert.
func Evaluate(slot slotModel.Slot, now time.Time) (Alert, bool) {
	if slot.Status != slotModel.StatusOccupied {
		return Alert{}, false
	}

	occ, ok := slot.Occupancy()
	if !ok {
		return Alert{}, false
	}

	return EvaluateDelta(occ.ExpectedExitTime.Sub(now).Minutes())
}

// FormatOverdue renders how long ago a slot expired, e.g. "1h 25m overdue".
func FormatOverdue(overdue time.Duration) string {
	total := int(overdue / time.Minute)
	if total < 1 {
		return "Less than a minute overdue"
	}

	hours, minutes := total/60, total%60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm overdue", hours, minutes)
	}

	return fmt.Sprintf("%dm overdue", minutes)
}
