package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"smartpark/infras/otel"
	"smartpark/internal/domains/audit/model"
	"smartpark/internal/domains/audit/repository"
	"smartpark/shared/constant"
	"smartpark/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Audit records administrator actions. Record never blocks or fails the caller.
type Audit interface {
	Record(ctx context.Context, action string, details model.Details)
}

type serviceImpl struct {
	repo  repository.Audit
	clock timezone.Clock
	otel  otel.Otel
}

func New(repo repository.Audit, clock timezone.Clock, otel otel.Otel) Audit {
	return &serviceImpl{
		repo:  repo,
		clock: clock,
		otel:  otel,
	}
}

func (s *serviceImpl) Record(ctx context.Context, action string, details model.Details) {
	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if actor == "" {
		actor = constant.DefaultActor
	}

	entry := model.New(action, actor, details, s.clock.Now())

	go func() {
		c, scope := s.otel.NewScope(context.WithoutCancel(ctx), constant.OtelServiceScopeName, constant.OtelServiceScopeName+".audit.Record")
		defer scope.End()

		if err := s.repo.Insert(c, entry); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("action", action).Str("actor", actor).Msg("failed to record admin action")

			return
		}

		log.Debug().Str("action", action).Str("actor", actor).Msg("admin action recorded")
	}()
}
