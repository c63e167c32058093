package validator_test

import (
	"net/http"
	"smartpark/shared/failure"
	"smartpark/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entryBody struct {
	VehicleID string `json:"vehicle_id" validate:"required,vehicle"`
	Email     string `json:"email"      validate:"required,email"`
	Area      int    `json:"area"       validate:"gte=1"`
	Floor     int    `json:"floor"      validate:"gte=1"`
	Duration  int    `json:"duration"   validate:"gte=1,lte=1440"`
}

type statusBody struct {
	SlotIDs []string `json:"slot_ids" validate:"required,min=1,dive,slotid"`
	Status  string   `json:"status"   validate:"required,oneof=empty maintenance"`
}

func validEntry() entryBody {
	return entryBody{VehicleID: "B 1234 XY", Email: "driver@example.com", Area: 1, Floor: 2, Duration: 60}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*entryBody)
		message string
	}{
		{name: "valid", mutate: func(*entryBody) {}},
		{name: "missing vehicle", mutate: func(b *entryBody) { b.VehicleID = "" }, message: "VehicleID is required"},
		{name: "bad plate", mutate: func(b *entryBody) { b.VehicleID = "!!" }, message: "VehicleID must be a plate of letters, digits, spaces or dashes"},
		{name: "invalid email", mutate: func(b *entryBody) { b.Email = "nope" }, message: "Email must be a valid email address"},
		{name: "area zero", mutate: func(b *entryBody) { b.Area = 0 }, message: "Area must be greater than or equal to 1"},
		{name: "duration too long", mutate: func(b *entryBody) { b.Duration = 2000 }, message: "Duration must be less than or equal to 1440"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validEntry()
			tt.mutate(&body)

			err := validator.ValidateStruct(&body)
			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestSlotIDValidation(t *testing.T) {
	assert.NoError(t, validator.ValidateStruct(&statusBody{SlotIDs: []string{"A1F1S1", "A12F3S45"}, Status: "maintenance"}))

	err := validator.ValidateStruct(&statusBody{SlotIDs: []string{"A1F1S1", "slot-9"}, Status: "empty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must look like A1F2S3")

	assert.Error(t, validator.ValidateStruct(&statusBody{SlotIDs: []string{}, Status: "empty"}))
	assert.Error(t, validator.ValidateStruct(&statusBody{SlotIDs: []string{"A1F1S1"}, Status: "occupied"}))
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "slot id", field: "A1F2S3", tag: "slotid"},
		{name: "slot id lowercase", field: "a1f2s3", tag: "slotid", wantErr: true},
		{name: "slot id trailing", field: "A1F2S3X", tag: "slotid", wantErr: true},
		{name: "empty tag", field: "", tag: "empty"},
		{name: "empty tag filled", field: "x", tag: "empty", wantErr: true},
		{name: "number in range", field: 25, tag: "gte=0,lte=100"},
		{name: "number out of range", field: 150, tag: "gte=0,lte=100", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"vehicle_id":"B1234XY","email":"a@b.co","area":1,"floor":1,"duration":30}`},
		{name: "invalid field", body: `{"vehicle_id":"B1234XY","email":"a@b.co","area":0,"floor":1,"duration":30}`, wantErr: true},
		{name: "malformed", body: `{"vehicle_id":}`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data entryBody

			err := validator.Validate(strings.NewReader(tt.body), &data)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "B1234XY", data.VehicleID)
		})
	}
}
