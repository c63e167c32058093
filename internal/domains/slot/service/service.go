package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"smartpark/config"
	"smartpark/infras/otel"
	"smartpark/internal/domains/slot/model"
	"smartpark/internal/domains/slot/model/dto"
	"smartpark/internal/domains/slot/repository"
	"smartpark/internal/integrations/notifier"
	"smartpark/shared/cache"
	"smartpark/shared/constant"
	"smartpark/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Slot interface {
	Get(ctx context.Context, id string) (dto.SlotResponse, error)
	// ChangeStatus moves slots between empty and maintenance. Every id is tried; the ones
	// that could not be moved are reported in FailedSlots.
	ChangeStatus(ctx context.Context, req dto.ChangeStatusRequest) (dto.ChangeStatusResponse, error)
	Occupancy(ctx context.Context) (dto.OccupancyResponse, error)
}

type serviceImpl struct {
	repo     repository.Slot
	notifier notifier.Notifier
	cache    cache.RedisCache
	clock    timezone.Clock
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Slot, notifier notifier.Notifier, cache cache.RedisCache, clock timezone.Clock,
	cfg *config.Config, otel otel.Otel) Slot {
	return &serviceImpl{
		repo:     repo,
		notifier: notifier,
		cache:    cache,
		clock:    clock,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Get")
	defer scope.End()

	scope.SetAttribute(constant.OtelSlotAttributeKey, id)

	if _, err = model.ParseID(id); err != nil {
		return res, err
	}

	slot, err := s.repo.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)

		return res, fmt.Errorf("failed to get slot %s: %w", id, err)
	}

	res.FromModel(slot)

	return res, nil
}

func (s *serviceImpl) ChangeStatus(ctx context.Context, req dto.ChangeStatusRequest) (res dto.ChangeStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.ChangeStatus")
	defer scope.End()

	if req.Status != model.StatusMaintenance && req.Status != model.StatusEmpty {
		return res, model.InvalidInput("status must be %s or %s", model.StatusMaintenance, model.StatusEmpty)
	}

	if len(req.SlotIDs) == 0 {
		return res, model.InvalidInput("parking_ids must not be empty")
	}

	res.UpdatedSlots = []string{}
	res.FailedSlots = []dto.FailedSlot{}

	for _, id := range req.SlotIDs {
		freed, err := s.change(ctx, id, req.Status)
		if err != nil {
			if errors.Is(err, model.ErrStoreUnavailable) {
				scope.TraceError(err)

				return res, err
			}

			log.Warn().Err(err).Str("slot_id", id).Str("status", req.Status.String()).Msg("slot status not changed")
			res.FailedSlots = append(res.FailedSlots, dto.FailedSlot{SlotID: id, Error: err.Error()})

			continue
		}

		res.UpdatedSlots = append(res.UpdatedSlots, id)

		if freed != nil {
			s.announce(ctx, *freed)
		}
	}

	if len(res.UpdatedSlots) > 0 {
		s.invalidate(ctx)
	}

	res.Message = fmt.Sprintf("Set %d of %d slots to %s.", len(res.UpdatedSlots), len(req.SlotIDs), req.Status)

	return res, nil
}

// change returns the slot when it went back to empty.
func (s *serviceImpl) change(ctx context.Context, id string, to model.Status) (*model.Slot, error) {
	if _, err := model.ParseID(id); err != nil {
		return nil, err
	}

	slot, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if slot.Status == to {
		return nil, nil
	}

	change, cond, err := model.Transition(slot, to, nil, model.ActorAdmin, s.clock.Now())
	if err != nil {
		return nil, err
	}

	applied, err := s.repo.ConditionalUpdate(ctx, id, change, cond)
	if err != nil {
		return nil, err
	}

	if !applied {
		return nil, fmt.Errorf("%w: %s", model.ErrSlotContention, id)
	}

	log.Info().Str("slot_id", id).Str("from", slot.Status.String()).Str("to", to.String()).Msg("slot status changed")

	if to == model.StatusEmpty {
		return &slot, nil
	}

	return nil, nil
}

func (s *serviceImpl) Occupancy(ctx context.Context) (res dto.OccupancyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Occupancy")
	defer scope.End()

	if err = s.cache.Get(ctx, model.CacheKeyOccupancy, &res); err == nil {
		log.Info().Str("cacheKey", model.CacheKeyOccupancy).Msg("cache hit for occupancy")

		return res, nil
	}

	slots, err := s.repo.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slots")

		return res, fmt.Errorf("failed to get slots: %w", err)
	}

	res.FromModels(slots)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, model.CacheKeyOccupancy, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save occupancy to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) announce(ctx context.Context, slot model.Slot) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.notifier.Announce(c, slot.ID, slot.Area, slot.Floor); err != nil {
			log.Warn().Err(err).Str("slot_id", slot.ID).Msg("failed to announce vacancy")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, model.CacheKeyOccupancy); err != nil {
			log.Error().Err(err).Msg("failed to invalidate occupancy cache")
		}
	}()
}
