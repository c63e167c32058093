package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"smartpark/infras/metrics"
	"smartpark/infras/otel"
	"smartpark/internal/domains/release/model/dto"
	sessionModel "smartpark/internal/domains/session/model"
	sessionService "smartpark/internal/domains/session/service"
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

type Release interface {
	// Release frees a slot and records the completed session. target is a slot id for
	// ActorAdmin and a vehicle id for ActorSystem.
	Release(ctx context.Context, target string, actor slotModel.Actor) (dto.ReleaseResponse, error)
}

type serviceImpl struct {
	repo     slotRepo.Slot
	session  sessionService.Session
	notifier notifier.Notifier
	cache    cache.RedisCache
	clock    timezone.Clock
	metrics  *metrics.Metrics
	otel     otel.Otel
}

func New(repo slotRepo.Slot, session sessionService.Session, notifier notifier.Notifier, cache cache.RedisCache,
	clock timezone.Clock, metrics *metrics.Metrics, otel otel.Otel) Release {
	return &serviceImpl{
		repo:     repo,
		session:  session,
		notifier: notifier,
		cache:    cache,
		clock:    clock,
		metrics:  metrics,
		otel:     otel,
	}
}

func (s *serviceImpl) Release(ctx context.Context, target string, actor slotModel.Actor) (res dto.ReleaseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".release.Release")
	defer scope.End()

	defer func() { s.record(actor, err) }()

	if !actor.Valid() {
		return res, slotModel.InvalidInput("unknown actor %q", actor)
	}

	if strings.TrimSpace(target) == "" {
		return res, slotModel.InvalidInput("slot or vehicle is required")
	}

	slot, err := s.resolve(ctx, target, actor)
	if err != nil {
		scope.TraceError(err)

		return res, err
	}

	scope.SetAttribute(constant.OtelSlotAttributeKey, slot.ID)

	now := s.clock.Now()

	change, cond, err := slotModel.Transition(slot, slotModel.StatusEmpty, nil, actor, now)
	if err != nil {
		scope.TraceError(err)

		return res, err
	}

	applied, err := s.repo.ConditionalUpdate(ctx, slot.ID, change, cond)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("slot_id", slot.ID).Msg("failed to release slot")

		return res, fmt.Errorf("failed to release slot %s: %w", slot.ID, err)
	}

	if !applied {
		log.Info().Str("slot_id", slot.ID).Msg("slot changed before release")

		return res, missing(actor, target)
	}

	session := sessionModel.New(closeRecord(slot, now))

	log.Info().Str("slot_id", slot.ID).Str("vehicle_id", session.VehicleID).Str("actor", string(actor)).
		Int("duration_minutes", session.DurationMinutes).Msg("slot released")

	if err = s.session.Append(ctx, session); err != nil {
		log.Warn().Err(err).Str("slot_id", slot.ID).Str("session_id", session.ID).Msg("slot released but session was not recorded")
	}

	s.afterRelease(ctx, slot)

	res = dto.ReleaseResponse{
		SlotID:          slot.ID,
		VehicleID:       session.VehicleID,
		ExitTime:        now,
		DurationMinutes: session.DurationMinutes,
	}

	return res, nil
}

// resolve finds the occupied slot to release.
func (s *serviceImpl) resolve(ctx context.Context, target string, actor slotModel.Actor) (slotModel.Slot, error) {
	if actor == slotModel.ActorAdmin {
		if _, err := slotModel.ParseID(target); err != nil {
			return slotModel.Slot{}, err
		}

		slot, err := s.repo.Get(ctx, target)
		if err != nil {
			return slotModel.Slot{}, fmt.Errorf("failed to get slot %s: %w", target, err)
		}

		if slot.Status != slotModel.StatusOccupied {
			return slotModel.Slot{}, fmt.Errorf("%w: %s is %s", slotModel.ErrNotOccupied, slot.ID, slot.Status)
		}

		return slot, nil
	}

	held, err := s.repo.FindOccupiedByVehicle(ctx, target)
	if err != nil {
		log.Error().Err(err).Str("vehicle_id", target).Msg("failed to look up vehicle")

		return slotModel.Slot{}, fmt.Errorf("failed to look up vehicle %s: %w", target, err)
	}

	slot, ok := slotModel.Earliest(held)
	if !ok {
		return slotModel.Slot{}, missing(actor, target)
	}

	if len(held) > 1 {
		ids := make([]string, len(held))
		for i, h := range held {
			ids[i] = h.ID
		}

		log.Warn().Str("vehicle_id", target).Strs("slot_ids", ids).Str("released", slot.ID).
			Msg("vehicle holds more than one slot, releasing the earliest")
	}

	return slot, nil
}

func (s *serviceImpl) afterRelease(ctx context.Context, slot slotModel.Slot) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, slotModel.CacheKeyOccupancy); err != nil {
			log.Error().Err(err).Msg("failed to invalidate occupancy cache")
		}

		if err := s.notifier.Announce(c, slot.ID, slot.Area, slot.Floor); err != nil {
			log.Warn().Err(err).Str("slot_id", slot.ID).Msg("failed to announce vacancy")
		}
	}()
}

func (s *serviceImpl) record(actor slotModel.Actor, err error) {
	result := metrics.ResultSuccess

	switch {
	case err == nil:
	case errors.Is(err, slotModel.ErrNotOccupied):
		result = "not_occupied"
	case errors.Is(err, slotModel.ErrNoActiveSession):
		result = "no_active_session"
	case errors.Is(err, slotModel.ErrStoreUnavailable):
		result = "store_unavailable"
	default:
		result = metrics.ResultFailure
	}

	s.metrics.Release(string(actor), result)
}

func missing(actor slotModel.Actor, target string) error {
	if actor == slotModel.ActorAdmin {
		return fmt.Errorf("%w: %s", slotModel.ErrNotOccupied, target)
	}

	return fmt.Errorf("%w: %s", slotModel.ErrNoActiveSession, target)
}

// closeRecord builds the session for slot ending at exit. Durations are whole minutes, never negative.
func closeRecord(slot slotModel.Slot, exit time.Time) sessionModel.Record {
	record := sessionModel.Record{
		SlotID:   slot.ID,
		Area:     slot.Area,
		Floor:    slot.Floor,
		ExitTime: exit,
	}

	if slot.VehicleID != nil {
		record.VehicleID = *slot.VehicleID
	}

	if slot.HolderContact != nil {
		record.HolderContact = *slot.HolderContact
	}

	if slot.EntryTime == nil {
		log.Warn().Str("slot_id", slot.ID).Msg("occupied slot has no entry time, recording zero duration")
		record.EntryTime = exit

		return record
	}

	record.EntryTime = *slot.EntryTime

	elapsed := exit.Sub(record.EntryTime)
	if elapsed < 0 {
		log.Warn().Str("slot_id", slot.ID).Dur("elapsed", elapsed).Msg("entry time is after exit, clamping duration to zero")

		return record
	}

	record.DurationMinutes = int(elapsed / time.Minute)

	return record
}
