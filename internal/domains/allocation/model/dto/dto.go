package dto

import (
	"smartpark/internal/domains/allocation/model"
	slotModel "smartpark/internal/domains/slot/model"
	"time"
)

// ClaimRequest asks for any free slot in an area, optionally on one floor.
type ClaimRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required,vehicle,max=20"`
	Email     string `json:"email" validate:"required,email"`
	Area      int    `json:"area" validate:"required,min=1"`
	Floor     *int   `json:"floor,omitempty" validate:"omitempty,min=1"`
	Duration  int    `json:"expected" validate:"required,min=1,max=1440"`
}

// ClaimSlotRequest places a vehicle on a specific slot.
type ClaimSlotRequest struct {
	SlotID    string `json:"parking_id" validate:"required,slotid"`
	VehicleID string `json:"vehicle_id" validate:"required,vehicle,max=20"`
	Email     string `json:"email" validate:"required,email"`
	Duration  int    `json:"expected_time_minutes" validate:"required,min=1,max=1440"`
}

type ClaimResponse struct {
	SlotID           string    `json:"parking_id"`
	EntryTime        time.Time `json:"entry_timestamp"`
	ExpectedExitTime time.Time `json:"expected_exit_time"`
}

func (r *ClaimResponse) FromModel(slotID string, occ slotModel.Occupancy) {
	r.SlotID = slotID
	r.EntryTime = occ.EntryTime
	r.ExpectedExitTime = occ.ExpectedExitTime
}

type WaitResponse struct {
	SlotID      string `json:"parking_id"`
	WaitMinutes int    `json:"wait_minutes"`
}

type EstimateWaitResponse struct {
	Area          int            `json:"area"`
	Floor         *int           `json:"floor,omitempty"`
	UpcomingSlots []WaitResponse `json:"upcoming_slots"`
}

func (r *EstimateWaitResponse) FromModels(area int, floor *int, waits []model.Wait) {
	r.Area = area
	r.Floor = floor

	r.UpcomingSlots = make([]WaitResponse, len(waits))
	for i, w := range waits {
		r.UpcomingSlots[i] = WaitResponse{SlotID: w.SlotID, WaitMinutes: w.WaitMinutes}
	}
}

type SlotResponse struct {
	SlotID string `json:"parking_id"`
	Floor  int    `json:"floor_number"`
	Number int    `json:"slot_number"`
}

// FloorStatusResponse lists the free slots of a floor, or the soonest vacancies when it is full.
type FloorStatusResponse struct {
	Status        string         `json:"status"`
	Message       string         `json:"message"`
	Slots         []SlotResponse `json:"slots,omitempty"`
	UpcomingSlots []WaitResponse `json:"upcoming_slots,omitempty"`
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Area  int    `json:"area_number" validate:"required,min=1"`
	Floor int    `json:"floor_number" validate:"required,min=1"`
}

type SubscribeResponse struct {
	Message        string `json:"message"`
	SubscriptionID string `json:"subscription_id"`
}
