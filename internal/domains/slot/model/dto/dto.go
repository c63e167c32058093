package dto

import (
	"smartpark/internal/domains/slot/model"
	"time"
)

type SlotResponse struct {
	ID               string     `json:"parking_id"`
	Area             int        `json:"area_number"`
	Floor            int        `json:"floor_number"`
	Number           int        `json:"slot_number"`
	Status           string     `json:"status"`
	VehicleID        *string    `json:"vehicle_id,omitempty"`
	Email            *string    `json:"email,omitempty"`
	EntryTime        *time.Time `json:"entry_timestamp,omitempty"`
	ExpectedExitTime *time.Time `json:"expected_time,omitempty"`
}

func (r *SlotResponse) FromModel(m model.Slot) {
	r.ID = m.ID
	r.Area = m.Area
	r.Floor = m.Floor
	r.Number = m.Number
	r.Status = m.Status.String()
	r.VehicleID = m.VehicleID
	r.Email = m.HolderContact
	r.EntryTime = m.EntryTime
	r.ExpectedExitTime = m.ExpectedExitTime
}

type ChangeStatusRequest struct {
	SlotIDs []string     `json:"parking_ids" validate:"required,min=1,max=100,dive,slotid"`
	Status  model.Status `json:"status" validate:"required,oneof=maintenance empty"`
}

type FailedSlot struct {
	SlotID string `json:"parking_id"`
	Error  string `json:"error"`
}

type ChangeStatusResponse struct {
	Message      string       `json:"message"`
	UpdatedSlots []string     `json:"updated_slots"`
	FailedSlots  []FailedSlot `json:"failed_slots"`
}

type AreaOccupancy struct {
	Area          int     `json:"area_number"`
	Total         int     `json:"total_spots"`
	Occupied      int     `json:"occupied_spots"`
	Available     int     `json:"available_spots"`
	OccupancyRate float64 `json:"occupancy_rate"`
	Status        string  `json:"status"`
}

type OccupancyResponse struct {
	TotalSpots     int             `json:"total_spots"`
	OccupiedSpots  int             `json:"occupied_spots"`
	AvailableSpots int             `json:"available_spots"`
	OccupancyRate  float64         `json:"occupancy_rate"`
	Areas          []AreaOccupancy `json:"areas"`
	Slots          []SlotResponse  `json:"slots"`
}

func (r *OccupancyResponse) FromModels(slots []model.Slot) {
	total, areas := model.Summarize(slots)

	r.TotalSpots = total.Total
	r.OccupiedSpots = total.Occupied
	r.AvailableSpots = total.Available()
	r.OccupancyRate = total.Rate()

	r.Areas = make([]AreaOccupancy, len(areas))
	for i, a := range areas {
		r.Areas[i] = AreaOccupancy{
			Area:          a.Area,
			Total:         a.Total,
			Occupied:      a.Occupied,
			Available:     a.Available(),
			OccupancyRate: a.Rate(),
			Status:        a.Label(),
		}
	}

	r.Slots = make([]SlotResponse, len(slots))
	for i, slot := range slots {
		r.Slots[i].FromModel(slot)
	}
}
