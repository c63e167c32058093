package admin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"smartpark/infras/otel/mocks"
	alertDto "smartpark/internal/domains/alert/model/dto"
	alertMocks "smartpark/internal/domains/alert/service/mocks"
	allocationDto "smartpark/internal/domains/allocation/model/dto"
	allocationMocks "smartpark/internal/domains/allocation/service/mocks"
	auditModel "smartpark/internal/domains/audit/model"
	auditMocks "smartpark/internal/domains/audit/service/mocks"
	authDto "smartpark/internal/domains/auth/model/dto"
	authMocks "smartpark/internal/domains/auth/service/mocks"
	releaseDto "smartpark/internal/domains/release/model/dto"
	releaseMocks "smartpark/internal/domains/release/service/mocks"
	sessionDto "smartpark/internal/domains/session/model/dto"
	sessionMocks "smartpark/internal/domains/session/service/mocks"
	slotModel "smartpark/internal/domains/slot/model"
	slotDto "smartpark/internal/domains/slot/model/dto"
	slotMocks "smartpark/internal/domains/slot/service/mocks"
	"smartpark/internal/handlers/admin"
	gDto "smartpark/shared/dto"
	"smartpark/shared/timezone"
	"smartpark/transport/http/middleware"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type deps struct {
	auth       *authMocks.MockAuth
	allocation *allocationMocks.MockAllocation
	release    *releaseMocks.MockRelease
	slot       *slotMocks.MockSlot
	alert      *alertMocks.MockAlert
	session    *sessionMocks.MockSession
	audit      *auditMocks.MockAudit
}

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*chi.Mux, deps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := deps{
		auth:       authMocks.NewMockAuth(ctrl),
		allocation: allocationMocks.NewMockAllocation(ctrl),
		release:    releaseMocks.NewMockRelease(ctrl),
		slot:       slotMocks.NewMockSlot(ctrl),
		alert:      alertMocks.NewMockAlert(ctrl),
		session:    sessionMocks.NewMockSession(ctrl),
		audit:      auditMocks.NewMockAudit(ctrl),
	}

	handler := admin.New(d.auth, d.allocation, d.release, d.slot, d.alert, d.session, d.audit, timezone.FixedClock(now), mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return router, d
}

func do(t *testing.T, router http.Handler, req *http.Request) (int, map[string]json.RawMessage) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	body := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec.Code, body
}

func TestIssueToken(t *testing.T) {
	body := `{"admin_id":"ops-1","role":"operator"}`

	t.Run("requires api key", func(t *testing.T) {
		router, _ := setup(t)

		code, _ := do(t, router, httptest.NewRequest(http.MethodPost, "/v1/admin/tokens", strings.NewReader(body)))

		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("internal caller", func(t *testing.T) {
		router, d := setup(t)

		d.auth.EXPECT().IssueToken(gomock.Any(), authDto.IssueTokenRequest{AdminID: "ops-1", Role: "operator"}).
			Return(authDto.TokenResponse{AccessToken: "signed", TokenType: authDto.TokenTypeBearer}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/tokens", strings.NewReader(body))
		req = req.WithContext(context.WithValue(req.Context(), middleware.SkipAuthKey("skip"), true))

		code, res := do(t, router, req)

		assert.Equal(t, http.StatusCreated, code)
		assert.Contains(t, string(res["data"]), "signed")
	})

	t.Run("unknown role", func(t *testing.T) {
		router, _ := setup(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/tokens", strings.NewReader(`{"admin_id":"ops-1","role":"root"}`))
		req = req.WithContext(context.WithValue(req.Context(), middleware.SkipAuthKey("skip"), true))

		code, _ := do(t, router, req)

		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestManualEntry(t *testing.T) {
	router, d := setup(t)

	req := allocationDto.ClaimSlotRequest{SlotID: "A1F2S3", VehicleID: "B1234XYZ", Email: "a@b.co", Duration: 45}

	d.allocation.EXPECT().ClaimSlot(gomock.Any(), req).
		Return(allocationDto.ClaimResponse{SlotID: "A1F2S3", EntryTime: now, ExpectedExitTime: now.Add(45 * time.Minute)}, nil)
	d.audit.EXPECT().Record(gomock.Any(), auditModel.ActionManualEntry, auditModel.Details{
		"parking_id": "A1F2S3",
		"vehicle_id": "B1234XYZ",
		"email":      "a@b.co",
	})

	code, _ := do(t, router, httptest.NewRequest(http.MethodPost, "/v1/admin/entries",
		strings.NewReader(`{"parking_id":"A1F2S3","vehicle_id":"B1234XYZ","email":"a@b.co","expected_time_minutes":45}`)))

	assert.Equal(t, http.StatusCreated, code)
}

func TestManualExit(t *testing.T) {
	t.Run("released", func(t *testing.T) {
		router, d := setup(t)

		d.release.EXPECT().Release(gomock.Any(), "A1F2S3", slotModel.ActorAdmin).
			Return(releaseDto.ReleaseResponse{SlotID: "A1F2S3", VehicleID: "B1234XYZ", DurationMinutes: 12}, nil)
		d.audit.EXPECT().Record(gomock.Any(), auditModel.ActionManualExit, gomock.Any())

		code, _ := do(t, router, httptest.NewRequest(http.MethodPost, "/v1/admin/exits", strings.NewReader(`{"parking_id":"A1F2S3"}`)))

		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("not occupied is not audited", func(t *testing.T) {
		router, d := setup(t)

		d.release.EXPECT().Release(gomock.Any(), "A1F2S3", slotModel.ActorAdmin).
			Return(releaseDto.ReleaseResponse{}, slotModel.ErrNotOccupied)

		code, res := do(t, router, httptest.NewRequest(http.MethodPost, "/v1/admin/exits", strings.NewReader(`{"parking_id":"A1F2S3"}`)))

		assert.Equal(t, http.StatusConflict, code)
		assert.Contains(t, string(res["error"]), slotModel.ErrNotOccupied.Message)
	})

	t.Run("malformed slot id", func(t *testing.T) {
		router, _ := setup(t)

		code, _ := do(t, router, httptest.NewRequest(http.MethodPost, "/v1/admin/exits", strings.NewReader(`{"parking_id":"slot-9"}`)))

		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestChangeSlotStatus(t *testing.T) {
	tests := []struct {
		name   string
		status slotModel.Status
		action string
	}{
		{name: "flag down", status: slotModel.StatusMaintenance, action: auditModel.ActionSlotFlagDown},
		{name: "flag up", status: slotModel.StatusEmpty, action: auditModel.ActionSlotFlagUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, d := setup(t)

			d.slot.EXPECT().ChangeStatus(gomock.Any(), slotDto.ChangeStatusRequest{SlotIDs: []string{"A1F1S1"}, Status: tt.status}).
				Return(slotDto.ChangeStatusResponse{UpdatedSlots: []string{"A1F1S1"}}, nil)
			d.audit.EXPECT().Record(gomock.Any(), tt.action, gomock.Any())

			code, _ := do(t, router, httptest.NewRequest(http.MethodPatch, "/v1/admin/slots/status",
				strings.NewReader(`{"parking_ids":["A1F1S1"],"status":"`+tt.status.String()+`"}`)))

			assert.Equal(t, http.StatusOK, code)
		})
	}

	t.Run("occupied is not a target status", func(t *testing.T) {
		router, _ := setup(t)

		code, _ := do(t, router, httptest.NewRequest(http.MethodPatch, "/v1/admin/slots/status",
			strings.NewReader(`{"parking_ids":["A1F1S1"],"status":"occupied"}`)))

		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestGetSlot(t *testing.T) {
	router, d := setup(t)

	d.slot.EXPECT().Get(gomock.Any(), "A9F9S9").Return(slotDto.SlotResponse{}, slotModel.ErrSlotNotFound)

	code, _ := do(t, router, httptest.NewRequest(http.MethodGet, "/v1/admin/slots/A9F9S9", nil))

	assert.Equal(t, http.StatusNotFound, code)
}

func TestOccupancy(t *testing.T) {
	router, d := setup(t)

	d.slot.EXPECT().Occupancy(gomock.Any()).Return(slotDto.OccupancyResponse{TotalSpots: 4, OccupiedSpots: 1, OccupancyRate: 25}, nil)
	d.audit.EXPECT().Record(gomock.Any(), auditModel.ActionViewOccupancy, auditModel.Details{"occupancy_rate": float64(25)})

	code, _ := do(t, router, httptest.NewRequest(http.MethodGet, "/v1/admin/occupancy", nil))

	assert.Equal(t, http.StatusOK, code)
}

func TestOverdueAlerts(t *testing.T) {
	router, d := setup(t)

	d.alert.EXPECT().ListOverdue(gomock.Any()).Return(alertDto.ListOverdueResponse{
		Alerts: []alertDto.OverdueResponse{{SlotID: "A1F1S1", Overdue: "20m overdue"}},
		Total:  1,
	}, nil)
	d.audit.EXPECT().Record(gomock.Any(), auditModel.ActionViewAlerts, auditModel.Details{"alerts_found": 1})

	code, _ := do(t, router, httptest.NewRequest(http.MethodGet, "/v1/admin/alerts", nil))

	assert.Equal(t, http.StatusOK, code)
}

func TestSessions(t *testing.T) {
	t.Run("defaults to today", func(t *testing.T) {
		router, d := setup(t)

		d.session.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (sessionDto.GetSessionsResponse, error) {
				assert.Equal(t, 1, params.Page)
				require.Len(t, filter.Filters, 1)
				assert.Equal(t, timezone.Day(now), filter.Filters[0].(gDto.Filter).Value)

				return sessionDto.GetSessionsResponse{TotalData: 2}, nil
			})
		d.audit.EXPECT().Record(gomock.Any(), auditModel.ActionViewVehicleLogs, auditModel.Details{
			"queried_date": timezone.Day(now),
			"vehicle_id":   "",
			"logs_found":   2,
		})

		code, _ := do(t, router, httptest.NewRequest(http.MethodGet, "/v1/admin/sessions", nil))

		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("filters by vehicle", func(t *testing.T) {
		router, d := setup(t)

		d.session.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (sessionDto.GetSessionsResponse, error) {
				require.Len(t, filter.Filters, 2)
				assert.Equal(t, "2026-02-27", filter.Filters[0].(gDto.Filter).Value)
				assert.Equal(t, "B1234XYZ", filter.Filters[1].(gDto.Filter).Value)

				return sessionDto.GetSessionsResponse{}, nil
			})
		d.audit.EXPECT().Record(gomock.Any(), auditModel.ActionViewVehicleLogs, gomock.Any())

		code, _ := do(t, router, httptest.NewRequest(http.MethodGet, "/v1/admin/sessions?date=2026-02-27&vehicle_id=B1234XYZ", nil))

		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("bad date", func(t *testing.T) {
		router, _ := setup(t)

		code, _ := do(t, router, httptest.NewRequest(http.MethodGet, "/v1/admin/sessions?date=27-02-2026", nil))

		assert.Equal(t, http.StatusBadRequest, code)
	})
}
