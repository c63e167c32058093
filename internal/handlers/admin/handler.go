package admin

import (
	"net/http"
	"smartpark/infras/otel"
	alertService "smartpark/internal/domains/alert/service"
	allocationDto "smartpark/internal/domains/allocation/model/dto"
	allocationService "smartpark/internal/domains/allocation/service"
	auditModel "smartpark/internal/domains/audit/model"
	auditService "smartpark/internal/domains/audit/service"
	authDto "smartpark/internal/domains/auth/model/dto"
	authService "smartpark/internal/domains/auth/service"
	releaseDto "smartpark/internal/domains/release/model/dto"
	releaseService "smartpark/internal/domains/release/service"
	sessionModel "smartpark/internal/domains/session/model"
	sessionService "smartpark/internal/domains/session/service"
	slotModel "smartpark/internal/domains/slot/model"
	slotDto "smartpark/internal/domains/slot/model/dto"
	slotService "smartpark/internal/domains/slot/service"
	"smartpark/shared/constant"
	gDto "smartpark/shared/dto"
	"smartpark/shared/failure"
	"smartpark/shared/timezone"
	"smartpark/shared/validator"
	"smartpark/transport/http/middleware"
	"smartpark/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	auth       authService.Auth
	allocation allocationService.Allocation
	release    releaseService.Release
	slot       slotService.Slot
	alert      alertService.Alert
	session    sessionService.Session
	audit      auditService.Audit
	clock      timezone.Clock
	otel       otel.Otel
}

func New(
	auth authService.Auth,
	allocation allocationService.Allocation,
	release releaseService.Release,
	slot slotService.Slot,
	alert alertService.Alert,
	session sessionService.Session,
	audit auditService.Audit,
	clock timezone.Clock,
	otel otel.Otel,
) Handler {
	return Handler{
		auth:       auth,
		allocation: allocation,
		release:    release,
		slot:       slot,
		alert:      alert,
		session:    session,
		audit:      audit,
		clock:      clock,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Post("/tokens", handler.IssueToken)
		routerGroup.Post("/entries", handler.ManualEntry)
		routerGroup.Post("/exits", handler.ManualExit)
		routerGroup.Patch("/slots/status", handler.ChangeSlotStatus)
		routerGroup.Get("/slots/{id}", handler.GetSlot)
		routerGroup.Get("/occupancy", handler.Occupancy)
		routerGroup.Get("/alerts", handler.OverdueAlerts)
		routerGroup.Get("/sessions", handler.Sessions)
	})
}

// IssueToken mints an admin token. Only callers holding the service API key may use it.
// @Summary Issue an admin token
// @Description Mint a bearer token for an operator id and role.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body authDto.IssueTokenRequest true "Token Request"
// @Success 201 {object} response.Data[authDto.TokenResponse] "Token issued"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/tokens [post]
// @Security ApiKeyAuth
func (handler *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".IssueToken")
	defer scope.End()

	if !middleware.InternalCaller(ctx) {
		err := failure.ForbiddenError
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	var req authDto.IssueTokenRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate token request")

		response.WithError(w, err)

		return
	}

	res, err := handler.auth.IssueToken(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// ManualEntry places a vehicle on the given slot.
// @Summary Manual entry
// @Description Place a vehicle on a specific empty slot.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body allocationDto.ClaimSlotRequest true "Manual Entry Request"
// @Success 201 {object} response.Data[allocationDto.ClaimResponse] "Slot assigned"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/admin/entries [post]
// @Security BearerAuth
func (handler *Handler) ManualEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ManualEntry")
	defer scope.End()

	var req allocationDto.ClaimSlotRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate manual entry request")

		response.WithError(w, err)

		return
	}

	res, err := handler.allocation.ClaimSlot(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("slot_id", req.SlotID).Str("vehicle_id", req.VehicleID).Msg("failed manual entry")

		response.WithError(w, err)

		return
	}

	handler.audit.Record(ctx, auditModel.ActionManualEntry, auditModel.Details{
		"parking_id": req.SlotID,
		"vehicle_id": req.VehicleID,
		"email":      req.Email,
	})

	response.WithJSON(w, http.StatusCreated, res)
}

// ManualExit frees the given slot whatever vehicle holds it.
// @Summary Manual exit
// @Description Free a slot by id and close its parking session.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body releaseDto.ManualExitRequest true "Manual Exit Request"
// @Success 200 {object} response.Data[releaseDto.ReleaseResponse] "Slot released"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/admin/exits [post]
// @Security BearerAuth
func (handler *Handler) ManualExit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ManualExit")
	defer scope.End()

	var req releaseDto.ManualExitRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate manual exit request")

		response.WithError(w, err)

		return
	}

	res, err := handler.release.Release(ctx, req.SlotID, slotModel.ActorAdmin)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("slot_id", req.SlotID).Msg("failed manual exit")

		response.WithError(w, err)

		return
	}

	handler.audit.Record(ctx, auditModel.ActionManualExit, auditModel.Details{
		"parking_id":       res.SlotID,
		"vehicle_id":       res.VehicleID,
		"duration_minutes": res.DurationMinutes,
	})

	response.WithJSON(w, http.StatusOK, res)
}

// ChangeSlotStatus puts slots under maintenance or returns them to service.
// @Summary Change slot status
// @Description Move slots between empty and maintenance. Each slot reports its own outcome.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body slotDto.ChangeStatusRequest true "Status Request"
// @Success 200 {object} response.Data[slotDto.ChangeStatusResponse] "Per slot outcome"
// @Failure 400 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/admin/slots/status [patch]
// @Security BearerAuth
func (handler *Handler) ChangeSlotStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangeSlotStatus")
	defer scope.End()

	var req slotDto.ChangeStatusRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate slot status request")

		response.WithError(w, err)

		return
	}

	res, err := handler.slot.ChangeStatus(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Strs("slot_ids", req.SlotIDs).Msg("failed to change slot status")

		response.WithError(w, err)

		return
	}

	action := auditModel.ActionSlotFlagUp
	if req.Status == slotModel.StatusMaintenance {
		action = auditModel.ActionSlotFlagDown
	}

	handler.audit.Record(ctx, action, auditModel.Details{
		"status":        req.Status,
		"updated_slots": res.UpdatedSlots,
		"failed_slots":  len(res.FailedSlots),
	})

	response.WithJSON(w, http.StatusOK, res)
}

// GetSlot returns one slot with its current occupancy.
// @Summary Get slot
// @Tags Admin
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Data[slotDto.SlotResponse] "Slot details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/slots/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.slot.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("slot_id", id).Msg("failed to get slot")

		response.WithError(w, err)

		return
	}

	handler.audit.Record(ctx, auditModel.ActionViewSlotStatus, auditModel.Details{"parking_id": id})

	response.WithJSON(w, http.StatusOK, res)
}

// Occupancy summarizes usage per area.
// @Summary Get occupancy
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[slotDto.OccupancyResponse] "Occupancy per area"
// @Failure 503 {object} response.Error
// @Router /v1/admin/occupancy [get]
// @Security BearerAuth
func (handler *Handler) Occupancy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Occupancy")
	defer scope.End()

	res, err := handler.slot.Occupancy(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to summarize occupancy")

		response.WithError(w, err)

		return
	}

	handler.audit.Record(ctx, auditModel.ActionViewOccupancy, auditModel.Details{
		"occupancy_rate": res.OccupancyRate,
	})

	response.WithJSON(w, http.StatusOK, res)
}

// OverdueAlerts lists occupied slots whose expected exit time has passed.
// @Summary List overdue slots
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[alertDto.ListOverdueResponse] "Overdue slots"
// @Failure 503 {object} response.Error
// @Router /v1/admin/alerts [get]
// @Security BearerAuth
func (handler *Handler) OverdueAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OverdueAlerts")
	defer scope.End()

	res, err := handler.alert.ListOverdue(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list overdue slots")

		response.WithError(w, err)

		return
	}

	handler.audit.Record(ctx, auditModel.ActionViewAlerts, auditModel.Details{"alerts_found": res.Total})

	response.WithJSON(w, http.StatusOK, res)
}

// Sessions lists the completed sessions of one day, today by default.
// @Summary List parking sessions
// @Description Retrieve completed sessions of one day with pagination.
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param date query string false "Session day (YYYY-MM-DD), today by default"
// @Param vehicle_id query string false "Filter by vehicle"
// @Success 200 {object} response.Data[sessionDto.GetSessionsResponse] "Sessions"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/sessions [get]
// @Security BearerAuth
func (handler *Handler) Sessions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Sessions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	date := r.URL.Query().Get(constant.RequestParamDate)
	if date == "" {
		date = timezone.Day(handler.clock.Now())
	}

	if _, err := timezone.Parse(constant.DayFormat, date); err != nil {
		err = failure.BadRequestFromString("date must be formatted as YYYY-MM-DD")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    sessionModel.FieldDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    sessionModel.TableName,
			},
		},
	}

	vehicleID := r.URL.Query().Get(constant.RequestParamVehicleID)
	if vehicleID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    sessionModel.FieldVehicleID,
			Operator: gDto.FilterOperatorEq,
			Value:    vehicleID,
			Table:    sessionModel.TableName,
		})
	}

	res, err := handler.session.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date", date).Msg("failed to get sessions")

		response.WithError(w, err)

		return
	}

	handler.audit.Record(ctx, auditModel.ActionViewVehicleLogs, auditModel.Details{
		"queried_date": date,
		"vehicle_id":   vehicleID,
		"logs_found":   res.TotalData,
	})

	response.WithJSON(w, http.StatusOK, res)
}
