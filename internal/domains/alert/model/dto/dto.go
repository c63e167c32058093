package dto

import (
	"smartpark/internal/domains/alert/model"
	slotModel "smartpark/internal/domains/slot/model"
	"time"
)

type OverdueResponse struct {
	SlotID           string    `json:"parking_id"`
	VehicleID        string    `json:"vehicle_id"`
	Email            string    `json:"email"`
	ExpectedExitTime time.Time `json:"expected_time"`
	Overdue          string    `json:"overdue"`
}

func (r *OverdueResponse) FromModel(slot slotModel.Slot, occ slotModel.Occupancy, now time.Time) {
	r.SlotID = slot.ID
	r.VehicleID = occ.VehicleID
	r.Email = occ.HolderContact
	r.ExpectedExitTime = occ.ExpectedExitTime
	r.Overdue = model.FormatOverdue(now.Sub(occ.ExpectedExitTime))
}

type ListOverdueResponse struct {
	Alerts []OverdueResponse `json:"alerts"`
	Total  int               `json:"total"`
}
