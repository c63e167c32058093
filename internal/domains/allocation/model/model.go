package model

import (
	"cmp"
	"slices"
	slotModel "smartpark/internal/domains/slot/model"
	"time"
)

const (
	DefaultWaitLimit = 3

	FloorAvailable = "AVAILABLE"
	FloorFull      = "FULL"
)

// Wait is how long until an occupied slot is expected to free up.
type Wait struct {
	SlotID      string
	WaitMinutes int
	remaining   time.Duration
}

// RankWaits returns the occupied slots that are expected to free up soonest, at most limit of them.
// Slots already past their expected exit carry no useful estimate and are left out.
func RankWaits(slots []slotModel.Slot, now time.Time, limit int) []Wait {
	waits := []Wait{}

	for _, slot := range slots {
		if slot.Status != slotModel.StatusOccupied || slot.ExpectedExitTime == nil {
			continue
		}

		remaining := slot.ExpectedExitTime.Sub(now)
		if remaining <= 0 {
			continue
		}

		waits = append(waits, Wait{
			SlotID:      slot.ID,
			WaitMinutes: int(remaining / time.Minute),
			remaining:   remaining,
		})
	}

	slices.SortFunc(waits, func(a, b Wait) int {
		return cmp.Or(cmp.Compare(a.remaining, b.remaining), cmp.Compare(a.SlotID, b.SlotID))
	})

	if limit > 0 && len(waits) > limit {
		waits = waits[:limit]
	}

	return waits
}
