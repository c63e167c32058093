package model

import (
	"cmp"
	"slices"
)

const (
	LabelFull      = "Full"
	LabelPartial   = "Partially Occupied"
	LabelAvailable = "Available"

	partialThreshold = 40.0
)

// Usage counts the slots of a pool. Available includes slots under maintenance.
type Usage struct {
	Total    int
	Occupied int
}

func (u Usage) Available() int {
	return u.Total - u.Occupied
}

// Rate is the occupied share in percent, zero for an empty pool.
func (u Usage) Rate() float64 {
	if u.Total == 0 {
		return 0
	}

	return float64(u.Occupied) / float64(u.Total) * 100
}

func (u Usage) Label() string {
	rate := u.Rate()

	switch {
	case u.Total > 0 && rate >= 100:
		return LabelFull
	case rate > partialThreshold:
		return LabelPartial
	default:
		return LabelAvailable
	}
}

type AreaUsage struct {
	Area int
	Usage
}

// Summarize counts slots overall and per area, areas in ascending order.
func Summarize(slots []Slot) (Usage, []AreaUsage) {
	var total Usage

	byArea := map[int]*AreaUsage{}

	for _, slot := range slots {
		area, ok := byArea[slot.Area]
		if !ok {
			area = &AreaUsage{Area: slot.Area}
			byArea[slot.Area] = area
		}

		total.Total++
		area.Total++

		if slot.Status == StatusOccupied {
			total.Occupied++
			area.Occupied++
		}
	}

	areas := make([]AreaUsage, 0, len(byArea))
	for _, area := range byArea {
		areas = append(areas, *area)
	}

	slices.SortFunc(areas, func(a, b AreaUsage) int {
		return cmp.Compare(a.Area, b.Area)
	})

	return total, areas
}
