package dto

import (
	"smartpark/internal/domains/session/model"
	"smartpark/shared"
	"time"
)

type SessionResponse struct {
	ID              string    `json:"session_id"`
	Date            string    `json:"date"`
	SlotID          string    `json:"parking_id"`
	VehicleID       string    `json:"vehicle_id"`
	Email           string    `json:"email"`
	Area            int       `json:"area"`
	Floor           int       `json:"floor"`
	EntryTime       time.Time `json:"entry_timestamp"`
	ExitTime        time.Time `json:"exit_timestamp"`
	DurationMinutes int       `json:"duration_minutes"`
}

func (r *SessionResponse) FromModel(m model.Session) {
	r.ID = m.ID
	r.Date = m.Date
	r.SlotID = m.SlotID
	r.VehicleID = m.VehicleID
	r.Email = m.HolderContact
	r.Area = m.Area
	r.Floor = m.Floor
	r.EntryTime = m.EntryTime
	r.ExitTime = m.ExitTime
	r.DurationMinutes = m.DurationMinutes
}

type GetSessionsResponse struct {
	Sessions  []SessionResponse `json:"sessions"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetSessionsResponse) FromModels(models []model.Session, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Sessions = make([]SessionResponse, len(models))
	for i, mod := range models {
		r.Sessions[i].FromModel(mod)
	}
}
