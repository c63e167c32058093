package parking_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"smartpark/infras/otel/mocks"
	"smartpark/internal/domains/allocation/model/dto"
	allocationMocks "smartpark/internal/domains/allocation/service/mocks"
	releaseDto "smartpark/internal/domains/release/model/dto"
	releaseMocks "smartpark/internal/domains/release/service/mocks"
	slotModel "smartpark/internal/domains/slot/model"
	"smartpark/internal/handlers/parking"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func setup(t *testing.T) (*chi.Mux, *allocationMocks.MockAllocation, *releaseMocks.MockRelease) {
	t.Helper()

	ctrl := gomock.NewController(t)
	allocation := allocationMocks.NewMockAllocation(ctrl)
	release := releaseMocks.NewMockRelease(ctrl)

	handler := parking.New(allocation, release, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return router, allocation, release
}

func do(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return rec, env
}

func TestEntry(t *testing.T) {
	entry := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("assigned", func(t *testing.T) {
		router, allocation, _ := setup(t)

		allocation.EXPECT().
			Claim(gomock.Any(), dto.ClaimRequest{VehicleID: "B1234XYZ", Email: "a@b.co", Area: 2, Duration: 60}).
			Return(dto.ClaimResponse{SlotID: "A2F1S2", EntryTime: entry, ExpectedExitTime: entry.Add(time.Hour)}, nil)

		rec, env := do(t, router, http.MethodPost, "/v1/entries", `{"vehicle_id":"B1234XYZ","email":"a@b.co","area":2,"expected":60}`)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var res dto.ClaimResponse
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, "A2F1S2", res.SlotID)
	})

	t.Run("invalid body", func(t *testing.T) {
		router, _, _ := setup(t)

		rec, env := do(t, router, http.MethodPost, "/v1/entries", `{"vehicle_id":"","area":0}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotEmpty(t, env.Error)
	})

	t.Run("full area returns upcoming slots", func(t *testing.T) {
		router, allocation, _ := setup(t)

		allocation.EXPECT().Claim(gomock.Any(), gomock.Any()).
			Return(dto.ClaimResponse{}, fmt.Errorf("%w in area 1", slotModel.ErrNoAvailableSlot))
		allocation.EXPECT().EstimateWait(gomock.Any(), 1, nil).
			Return(dto.EstimateWaitResponse{Area: 1, UpcomingSlots: []dto.WaitResponse{{SlotID: "A1F1S3", WaitMinutes: 4}}}, nil)

		rec, env := do(t, router, http.MethodPost, "/v1/entries", `{"vehicle_id":"B1234XYZ","email":"a@b.co","area":1,"expected":30}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "no available slot in area 1", env.Error)

		var upcoming []dto.WaitResponse
		require.NoError(t, json.Unmarshal(env.Data, &upcoming))
		assert.Equal(t, []dto.WaitResponse{{SlotID: "A1F1S3", WaitMinutes: 4}}, upcoming)
	})

	t.Run("already parked", func(t *testing.T) {
		router, allocation, _ := setup(t)

		allocation.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(dto.ClaimResponse{}, slotModel.ErrAlreadyParked)

		rec, env := do(t, router, http.MethodPost, "/v1/entries", `{"vehicle_id":"B1234XYZ","email":"a@b.co","area":1,"expected":30}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, slotModel.ErrAlreadyParked.Message, env.Error)
	})
}

func TestExit(t *testing.T) {
	t.Run("released", func(t *testing.T) {
		router, _, release := setup(t)

		release.EXPECT().Release(gomock.Any(), "B1234XYZ", slotModel.ActorSystem).
			Return(releaseDto.ReleaseResponse{SlotID: "A1F1S1", VehicleID: "B1234XYZ", DurationMinutes: 95}, nil)

		rec, env := do(t, router, http.MethodPost, "/v1/exits", `{"vehicle_id":"B1234XYZ"}`)

		assert.Equal(t, http.StatusOK, rec.Code)

		var res releaseDto.ReleaseResponse
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, 95, res.DurationMinutes)
	})

	t.Run("no active session", func(t *testing.T) {
		router, _, release := setup(t)

		release.EXPECT().Release(gomock.Any(), "B1234XYZ", slotModel.ActorSystem).
			Return(releaseDto.ReleaseResponse{}, slotModel.ErrNoActiveSession)

		rec, _ := do(t, router, http.MethodPost, "/v1/exits", `{"vehicle_id":"B1234XYZ"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestFloorStatus(t *testing.T) {
	tests := []struct {
		name   string
		target string
		code   int
	}{
		{name: "missing area", target: "/v1/floors/status?floor=1", code: http.StatusBadRequest},
		{name: "missing floor", target: "/v1/floors/status?area=1", code: http.StatusBadRequest},
		{name: "non numeric", target: "/v1/floors/status?area=x&floor=1", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, _ := setup(t)

			rec, _ := do(t, router, http.MethodGet, tt.target, "")

			assert.Equal(t, tt.code, rec.Code)
		})
	}

	t.Run("available", func(t *testing.T) {
		router, allocation, _ := setup(t)

		allocation.EXPECT().FloorStatus(gomock.Any(), 1, 2).
			Return(dto.FloorStatusResponse{Status: "AVAILABLE", Message: "1 slots found on Floor 2."}, nil)

		rec, env := do(t, router, http.MethodGet, "/v1/floors/status?area=1&floor=2", "")

		assert.Equal(t, http.StatusOK, rec.Code)

		var res dto.FloorStatusResponse
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, "AVAILABLE", res.Status)
	})
}

func TestEstimateWait(t *testing.T) {
	router, allocation, _ := setup(t)

	floor := 3
	allocation.EXPECT().EstimateWait(gomock.Any(), 1, &floor).
		Return(dto.EstimateWaitResponse{Area: 1, Floor: &floor}, nil)

	rec, _ := do(t, router, http.MethodGet, "/v1/floors/wait?area=1&floor=3", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubscribe(t *testing.T) {
	router, allocation, _ := setup(t)

	allocation.EXPECT().Subscribe(gomock.Any(), dto.SubscribeRequest{Email: "a@b.co", Area: 1, Floor: 2}).
		Return(dto.SubscribeResponse{SubscriptionID: "a@b.co-1-2"}, nil)

	rec, env := do(t, router, http.MethodPost, "/v1/subscriptions", `{"email":"a@b.co","area_number":1,"floor_number":2}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var res dto.SubscribeResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "a@b.co-1-2", res.SubscriptionID)
}
