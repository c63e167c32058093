package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"smartpark/config"
	"smartpark/infras/kafka"
	"smartpark/infras/otel"
	"smartpark/infras/postgres"
	"smartpark/internal/domains/session/model"
	"smartpark/internal/domains/session/model/dto"
	"smartpark/internal/domains/session/repository"
	"smartpark/shared"
	"smartpark/shared/cache"
	"smartpark/shared/constant"
	gDto "smartpark/shared/dto"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	cacheGetAllSession = "session:gets"
	cacheCountSession  = "session:count"
)

// Session is the event log of completed occupancies.
type Session interface {
	// Append persists the record. When the store rejects it the record is parked on
	// the spool topic for Replay; an error means both paths failed.
	Append(ctx context.Context, session model.Session) error
	// Replay writes a spooled record. Duplicates are ignored.
	Replay(ctx context.Context, session model.Session) error
	// Listen consumes the spool until ctx is done.
	Listen(ctx context.Context)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSessionsResponse, error)
}

type serviceImpl struct {
	repo  repository.Session
	kafka kafka.Client
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Session, kafka kafka.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Session {
	return &serviceImpl{
		repo:  repo,
		kafka: kafka,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Append(ctx context.Context, session model.Session) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.Append")
	defer scope.End()

	scope.SetAttribute(constant.OtelSlotAttributeKey, session.SlotID)

	err := s.repo.Insert(ctx, session)
	if err == nil {
		s.invalidate(ctx)

		return nil
	}

	log.Warn().Err(err).Str("session_id", session.ID).Str("slot_id", session.SlotID).Msg("failed to append session, spooling for replay")

	spoolErr := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic.SessionSpool, kafka.Message{Key: session.ID, Value: session})
	if spoolErr != nil {
		scope.TraceError(spoolErr)

		return fmt.Errorf("failed to append session %s: %w (spool: %w)", session.ID, err, spoolErr)
	}

	return nil
}

func (s *serviceImpl) Replay(ctx context.Context, session model.Session) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".session.Replay")
	defer scope.End()

	written, err := s.repo.InsertIgnore(ctx, session)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("session_id", session.ID).Msg("failed to replay session")

		return fmt.Errorf("failed to replay session %s: %w", session.ID, err)
	}

	if !written {
		log.Info().Str("session_id", session.ID).Msg("session already recorded, skipping replay")

		return nil
	}

	log.Info().Str("session_id", session.ID).Str("slot_id", session.SlotID).Msg("replayed spooled session")
	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Listen(ctx context.Context) {
	log.Info().Str("topic", s.cfg.Kafka.Topic.SessionSpool).Msg("session spool consumer started")

	s.kafka.Consume(ctx, s.cfg.Kafka.ConsumerGroup, s.cfg.Kafka.Topic.SessionSpool, s.handleSpool)
}

// handleSpool drops records that can never be written: undecodable payloads and
// rows the database rejects. Any other failure is returned so the record is retried.
func (s *serviceImpl) handleSpool(ctx context.Context, msg kafkaGo.Message) error {
	session, err := kafka.DecodeKafkaMessage[model.Session](msg)
	if err != nil {
		log.Error().Err(err).Str("key", string(msg.Key)).Msg("dropping malformed spooled session")

		return nil
	}

	err = s.Replay(ctx, session)
	if err != nil && postgres.IsPermanent(err) {
		log.Error().Err(err).Str("session_id", session.ID).Msg("dropping spooled session rejected by the database")

		return nil
	}

	return err
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSessionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.GetAll")
	defer scope.End()

	req.RestrictSort(model.SortableFields, constant.DefaultValueSortBy)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSession, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for sessions")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		scope.TraceError(err)

		return res, fmt.Errorf("failed to count sessions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sessions")

		return res, fmt.Errorf("failed to get sessions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save sessions to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSession, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count sessions")

		return res, fmt.Errorf("failed to count sessions: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save session count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllSession)
		shared.InvalidateCaches(c, s.cache, cacheCountSession)
	}()
}
