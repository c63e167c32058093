package parking

import (
	"context"
	"errors"
	"net/http"
	"smartpark/infras/otel"
	"smartpark/internal/domains/allocation/model/dto"
	allocationService "smartpark/internal/domains/allocation/service"
	releaseDto "smartpark/internal/domains/release/model/dto"
	releaseService "smartpark/internal/domains/release/service"
	slotModel "smartpark/internal/domains/slot/model"
	"smartpark/shared"
	"smartpark/shared/constant"
	"smartpark/shared/failure"
	"smartpark/shared/validator"
	"smartpark/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	allocation allocationService.Allocation
	release    releaseService.Release
	otel       otel.Otel
}

func New(allocation allocationService.Allocation, release releaseService.Release, otel otel.Otel) Handler {
	return Handler{
		allocation: allocation,
		release:    release,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/entries", handler.Entry)
	router.Post("/exits", handler.Exit)
	router.Post("/subscriptions", handler.Subscribe)

	router.Route("/floors", func(routerGroup chi.Router) {
		routerGroup.Get("/status", handler.FloorStatus)
		routerGroup.Get("/wait", handler.EstimateWait)
	})
}

// Entry assigns the first free slot in the requested area to a vehicle.
// When the area is full the soonest expected vacancies are returned with the error.
// @Summary Park a vehicle
// @Description Assign the lowest free slot of an area, optionally on one floor.
// @Tags Parking
// @Accept json
// @Produce json
// @Param request body dto.ClaimRequest true "Entry Request"
// @Success 201 {object} response.Data[dto.ClaimResponse] "Slot assigned"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.ErrorData[[]dto.WaitResponse] "Area full, with the soonest vacancies"
// @Failure 503 {object} response.Error
// @Router /v1/entries [post]
func (handler *Handler) Entry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Entry")
	defer scope.End()

	var req dto.ClaimRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate entry request")

		response.WithError(w, err)

		return
	}

	res, err := handler.allocation.Claim(ctx, req)
	if err != nil {
		scope.TraceError(err)

		if errors.Is(err, slotModel.ErrNoAvailableSlot) {
			handler.respondFull(ctx, w, err, req.Area, req.Floor)

			return
		}

		log.Error().Err(err).Str("vehicle_id", req.VehicleID).Msg("failed to claim slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Slot " + res.SlotID + " assigned to vehicle " + req.VehicleID)

	response.WithJSON(w, http.StatusCreated, res)
}

func (handler *Handler) respondFull(ctx context.Context, w http.ResponseWriter, claimErr error, area int, floor *int) {
	estimate, err := handler.allocation.EstimateWait(ctx, area, floor)
	if err != nil {
		log.Warn().Err(err).Int("area", area).Msg("failed to estimate wait for full area")

		response.WithError(w, claimErr)

		return
	}

	response.WithErrorData(w, claimErr, estimate.UpcomingSlots)
}

// Exit frees the slot held by a vehicle and records the completed session.
// @Summary Release a vehicle
// @Description Free the slot held by a vehicle and close its parking session.
// @Tags Parking
// @Accept json
// @Produce json
// @Param request body releaseDto.ExitRequest true "Exit Request"
// @Success 200 {object} response.Data[releaseDto.ReleaseResponse] "Slot released"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/exits [post]
func (handler *Handler) Exit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Exit")
	defer scope.End()

	var req releaseDto.ExitRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate exit request")

		response.WithError(w, err)

		return
	}

	res, err := handler.release.Release(ctx, req.VehicleID, slotModel.ActorSystem)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("vehicle_id", req.VehicleID).Msg("failed to release slot")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// FloorStatus lists the free slots of one floor.
// @Summary Get floor status
// @Description List the free slots of one floor, or report it full with the wait estimate.
// @Tags Floor
// @Produce json
// @Param area query integer true "Area number"
// @Param floor query integer true "Floor number"
// @Success 200 {object} response.Data[dto.FloorStatusResponse] "Floor status"
// @Failure 400 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/floors/status [get]
func (handler *Handler) FloorStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FloorStatus")
	defer scope.End()

	area, floor, err := location(r)
	if err == nil && floor == nil {
		err = failure.BadRequestFromString("floor is required")
	}

	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.allocation.FloorStatus(ctx, area, *floor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("area", area).Int("floor", *floor).Msg("failed to get floor status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// EstimateWait returns the occupied slots of an area that are expected to free up first.
// @Summary Estimate waiting time
// @Description Rank the occupied slots of an area by their expected exit time.
// @Tags Floor
// @Produce json
// @Param area query integer true "Area number"
// @Param floor query integer false "Floor number"
// @Success 200 {object} response.Data[dto.EstimateWaitResponse] "Upcoming vacancies"
// @Failure 400 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/floors/wait [get]
func (handler *Handler) EstimateWait(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EstimateWait")
	defer scope.End()

	area, floor, err := location(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.allocation.EstimateWait(ctx, area, floor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("area", area).Msg("failed to estimate wait")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Subscribe registers an email for vacancy announcements of one floor.
// @Summary Subscribe to vacancies
// @Description Register an email address for vacancy announcements of one floor.
// @Tags Floor
// @Accept json
// @Produce json
// @Param request body dto.SubscribeRequest true "Subscription Request"
// @Success 200 {object} response.Data[dto.SubscribeResponse] "Subscribed"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/subscriptions [post]
func (handler *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Subscribe")
	defer scope.End()

	var req dto.SubscribeRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate subscription request")

		response.WithError(w, err)

		return
	}

	res, err := handler.allocation.Subscribe(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("area", req.Area).Int("floor", req.Floor).Msg("failed to subscribe")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// location reads the required area and optional floor query parameters.
func location(r *http.Request) (int, *int, error) {
	query := r.URL.Query()

	area, err := shared.ConvertStringToInt(query.Get(constant.RequestParamArea))
	if err != nil {
		return 0, nil, failure.BadRequestFromString("area must be a number")
	}

	if area == nil {
		return 0, nil, failure.BadRequestFromString("area is required")
	}

	floor, err := shared.ConvertStringToInt(query.Get(constant.RequestParamFloor))
	if err != nil {
		return 0, nil, failure.BadRequestFromString("floor must be a number")
	}

	return *area, floor, nil
}
