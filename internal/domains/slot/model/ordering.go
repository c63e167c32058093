package model

import (
	"cmp"
	"slices"
)

// SortCandidates orders slots by floor, then slot number. The id breaks remaining ties.
func SortCandidates(slots []Slot) {
	slices.SortStableFunc(slots, func(a, b Slot) int {
		return cmp.Or(
			cmp.Compare(a.Floor, b.Floor),
			cmp.Compare(a.Number, b.Number),
			cmp.Compare(a.ID, b.ID),
		)
	})
}

// Earliest picks the slot with the oldest entry time, used when one vehicle
// unexpectedly holds several slots. Missing entry times sort last.
func Earliest(slots []Slot) (Slot, bool) {
	if len(slots) == 0 {
		return Slot{}, false
	}

	return slices.MinFunc(slots, func(a, b Slot) int {
		switch {
		case a.EntryTime == nil && b.EntryTime != nil:
			return 1
		case a.EntryTime != nil && b.EntryTime == nil:
			return -1
		case a.EntryTime != nil && b.EntryTime != nil:
			if c := a.EntryTime.Compare(*b.EntryTime); c != 0 {
				return c
			}
		}

		return cmp.Compare(a.ID, b.ID)
	}), true
}
