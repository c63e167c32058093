package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"smartpark/config"
	"smartpark/infras/metrics"
	"smartpark/infras/otel"
	"smartpark/internal/domains/allocation/model"
	"smartpark/internal/domains/allocation/model/dto"
	slotModel "smartpark/internal/domains/slot/model"
	slotRepo "smartpark/internal/domains/slot/repository"
	"smartpark/internal/integrations/notifier"
	"smartpark/shared/cache"
	"smartpark/shared/constant"
	"smartpark/shared/timezone"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Allocation interface {
	// Claim takes the first free slot of the requested location. Losing the race for it
	// returns ErrSlotContention; the next candidate is never tried.
	Claim(ctx context.Context, req dto.ClaimRequest) (dto.ClaimResponse, error)
	// ClaimSlot places a vehicle on a specific slot on behalf of an administrator.
	ClaimSlot(ctx context.Context, req dto.ClaimSlotRequest) (dto.ClaimResponse, error)
	EstimateWait(ctx context.Context, area int, floor *int) (dto.EstimateWaitResponse, error)
	FloorStatus(ctx context.Context, area, floor int) (dto.FloorStatusResponse, error)
	Subscribe(ctx context.Context, req dto.SubscribeRequest) (dto.SubscribeResponse, error)
}

type serviceImpl struct {
	repo     slotRepo.Slot
	notifier notifier.Notifier
	cache    cache.RedisCache
	clock    timezone.Clock
	metrics  *metrics.Metrics
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo slotRepo.Slot, notifier notifier.Notifier, cache cache.RedisCache, clock timezone.Clock,
	metrics *metrics.Metrics, cfg *config.Config, otel otel.Otel) Allocation {
	return &serviceImpl{
		repo:     repo,
		notifier: notifier,
		cache:    cache,
		clock:    clock,
		metrics:  metrics,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Claim(ctx context.Context, req dto.ClaimRequest) (res dto.ClaimResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".allocation.Claim")
	defer scope.End()

	defer func() { s.record(err) }()

	if err = validateClaim(req.VehicleID, req.Area, req.Floor, req.Duration); err != nil {
		return res, err
	}

	if err = s.ensureNotParked(ctx, req.VehicleID); err != nil {
		scope.TraceError(err)

		return res, err
	}

	now := s.clock.Now()
	occ := occupancy(req.VehicleID, req.Email, req.Duration, now)

	candidates, err := s.repo.FindByStatus(ctx, slotModel.StatusEmpty, &req.Area, req.Floor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("area", req.Area).Msg("failed to find empty slots")

		return res, fmt.Errorf("failed to find empty slots: %w", err)
	}

	if len(candidates) == 0 {
		return res, fmt.Errorf("%w in area %d%s", slotModel.ErrNoAvailableSlot, req.Area, floorSuffix(req.Floor))
	}

	slotModel.SortCandidates(candidates)
	slot := candidates[0]

	scope.SetAttribute(constant.OtelSlotAttributeKey, slot.ID)

	if err = s.occupy(ctx, slot, occ, slotModel.ActorSystem, now); err != nil {
		scope.TraceError(err)

		return res, err
	}

	log.Info().Str("slot_id", slot.ID).Str("vehicle_id", req.VehicleID).Msg("slot claimed")

	s.register(ctx, req.Email, req.Area, &slot.Floor)

	res.FromModel(slot.ID, occ)

	return res, nil
}

func (s *serviceImpl) ClaimSlot(ctx context.Context, req dto.ClaimSlotRequest) (res dto.ClaimResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".allocation.ClaimSlot")
	defer scope.End()

	scope.SetAttribute(constant.OtelSlotAttributeKey, req.SlotID)

	defer func() { s.record(err) }()

	loc, err := slotModel.ParseID(req.SlotID)
	if err != nil {
		return res, err
	}

	if err = validateClaim(req.VehicleID, loc.Area, &loc.Floor, req.Duration); err != nil {
		return res, err
	}

	if err = s.ensureNotParked(ctx, req.VehicleID); err != nil {
		scope.TraceError(err)

		return res, err
	}

	slot, err := s.repo.Get(ctx, req.SlotID)
	if err != nil {
		scope.TraceError(err)

		return res, fmt.Errorf("failed to get slot %s: %w", req.SlotID, err)
	}

	now := s.clock.Now()
	occ := occupancy(req.VehicleID, req.Email, req.Duration, now)

	if err = s.occupy(ctx, slot, occ, slotModel.ActorAdmin, now); err != nil {
		scope.TraceError(err)

		return res, err
	}

	log.Info().Str("slot_id", slot.ID).Str("vehicle_id", req.VehicleID).Msg("slot claimed manually")

	res.FromModel(slot.ID, occ)

	return res, nil
}

func (s *serviceImpl) EstimateWait(ctx context.Context, area int, floor *int) (res dto.EstimateWaitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".allocation.EstimateWait")
	defer scope.End()

	if area < 1 || (floor != nil && *floor < 1) {
		return res, slotModel.InvalidInput("area and floor must be positive")
	}

	waits, err := s.waits(ctx, area, floor)
	if err != nil {
		scope.TraceError(err)

		return res, err
	}

	res.FromModels(area, floor, waits)

	return res, nil
}

func (s *serviceImpl) FloorStatus(ctx context.Context, area, floor int) (res dto.FloorStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".allocation.FloorStatus")
	defer scope.End()

	if area < 1 || floor < 1 {
		return res, slotModel.InvalidInput("area and floor must be positive")
	}

	empty, err := s.repo.FindByStatus(ctx, slotModel.StatusEmpty, &area, &floor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("area", area).Int("floor", floor).Msg("failed to find empty slots")

		return res, fmt.Errorf("failed to find empty slots: %w", err)
	}

	if len(empty) > 0 {
		slotModel.SortCandidates(empty)

		res.Status = model.FloorAvailable
		res.Message = fmt.Sprintf("%d slots found on Floor %d.", len(empty), floor)
		res.Slots = make([]dto.SlotResponse, len(empty))

		for i, slot := range empty {
			res.Slots[i] = dto.SlotResponse{SlotID: slot.ID, Floor: slot.Floor, Number: slot.Number}
		}

		return res, nil
	}

	waits, err := s.waits(ctx, area, &floor)
	if err != nil {
		scope.TraceError(err)

		return res, err
	}

	var estimate dto.EstimateWaitResponse
	estimate.FromModels(area, &floor, waits)

	res.Status = model.FloorFull
	res.Message = fmt.Sprintf("Floor %d in Area %d is full.", floor, area)
	res.UpcomingSlots = estimate.UpcomingSlots

	return res, nil
}

func (s *serviceImpl) Subscribe(ctx context.Context, req dto.SubscribeRequest) (res dto.SubscribeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".allocation.Subscribe")
	defer scope.End()

	if err = s.notifier.Register(ctx, req.Email, &req.Area, &req.Floor); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("email", req.Email).Msg("failed to register subscription")

		return res, fmt.Errorf("failed to register subscription: %w", err)
	}

	res.Message = "Subscription request sent successfully! Please check your email to confirm your subscription."
	res.SubscriptionID = fmt.Sprintf("%s-%d-%d", strings.ToLower(req.Email), req.Area, req.Floor)

	return res, nil
}

func (s *serviceImpl) ensureNotParked(ctx context.Context, vehicleID string) error {
	held, err := s.repo.FindOccupiedByVehicle(ctx, vehicleID)
	if err != nil {
		log.Error().Err(err).Str("vehicle_id", vehicleID).Msg("failed to look up vehicle")

		return fmt.Errorf("failed to look up vehicle %s: %w", vehicleID, err)
	}

	if len(held) > 0 {
		return fmt.Errorf("%w: %s holds %s", slotModel.ErrAlreadyParked, vehicleID, held[0].ID)
	}

	return nil
}

// occupy runs the conditional empty -> occupied update for slot.
func (s *serviceImpl) occupy(ctx context.Context, slot slotModel.Slot, occ slotModel.Occupancy, actor slotModel.Actor, now time.Time) error {
	change, cond, err := slotModel.Transition(slot, slotModel.StatusOccupied, &occ, actor, now)
	if err != nil {
		return err
	}

	applied, err := s.repo.ConditionalUpdate(ctx, slot.ID, change, cond)
	if err != nil {
		log.Error().Err(err).Str("slot_id", slot.ID).Msg("failed to claim slot")

		return fmt.Errorf("failed to claim slot %s: %w", slot.ID, err)
	}

	if !applied {
		log.Info().Str("slot_id", slot.ID).Str("vehicle_id", occ.VehicleID).Msg("lost the race for slot")

		return fmt.Errorf("%w: %s", slotModel.ErrSlotContention, slot.ID)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) waits(ctx context.Context, area int, floor *int) ([]model.Wait, error) {
	occupied, err := s.repo.FindByStatus(ctx, slotModel.StatusOccupied, &area, floor)
	if err != nil {
		log.Error().Err(err).Int("area", area).Msg("failed to find occupied slots")

		return nil, fmt.Errorf("failed to find occupied slots: %w", err)
	}

	limit := s.cfg.Parking.WaitEstimateSize
	if limit <= 0 {
		limit = model.DefaultWaitLimit
	}

	return model.RankWaits(occupied, s.clock.Now(), limit), nil
}

// register never fails the claim.
func (s *serviceImpl) register(ctx context.Context, email string, area int, floor *int) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.notifier.Register(c, email, &area, floor); err != nil {
			log.Warn().Err(err).Str("email", email).Msg("failed to register holder contact")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, slotModel.CacheKeyOccupancy); err != nil {
			log.Error().Err(err).Msg("failed to invalidate occupancy cache")
		}
	}()
}

func (s *serviceImpl) record(err error) {
	if err == nil {
		s.metrics.Claim(metrics.ResultSuccess)

		return
	}

	s.metrics.Claim(claimResult(err))
}

func claimResult(err error) string {
	switch {
	case errors.Is(err, slotModel.ErrAlreadyParked):
		return "already_parked"
	case errors.Is(err, slotModel.ErrNoAvailableSlot):
		return "no_available_slot"
	case errors.Is(err, slotModel.ErrSlotContention):
		return "contention"
	case errors.Is(err, slotModel.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, slotModel.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return metrics.ResultFailure
	}
}

func validateClaim(vehicleID string, area int, floor *int, duration int) error {
	switch {
	case strings.TrimSpace(vehicleID) == "":
		return slotModel.InvalidInput("vehicle_id is required")
	case area < 1:
		return slotModel.InvalidInput("area must be positive")
	case floor != nil && *floor < 1:
		return slotModel.InvalidInput("floor must be positive")
	case duration < 1:
		return slotModel.InvalidInput("expected duration must be at least one minute")
	}

	return nil
}

func occupancy(vehicleID, email string, duration int, now time.Time) slotModel.Occupancy {
	return slotModel.Occupancy{
		VehicleID:        vehicleID,
		HolderContact:    email,
		EntryTime:        now,
		ExpectedExitTime: now.Add(time.Duration(duration) * time.Minute),
	}
}

func floorSuffix(floor *int) string {
	if floor == nil {
		return ""
	}

	return fmt.Sprintf(" floor %d", *floor)
}
