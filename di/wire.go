//go:build wireinject
// +build wireinject

package di

import (
	"smartpark/config"
	"smartpark/infras/jwt"
	"smartpark/infras/kafka"
	"smartpark/infras/metrics"
	"smartpark/infras/otel"
	"smartpark/infras/postgres"
	"smartpark/infras/redis"
	"smartpark/internal/integrations/notifier"
	"smartpark/permissions"
	"smartpark/shared/cache"
	"smartpark/shared/timezone"
	"smartpark/transport/http"
	"smartpark/transport/http/middleware"
	"smartpark/transport/http/router"

	alertService "smartpark/internal/domains/alert/service"
	allocationService "smartpark/internal/domains/allocation/service"
	auditRepository "smartpark/internal/domains/audit/repository"
	auditService "smartpark/internal/domains/audit/service"
	authService "smartpark/internal/domains/auth/service"
	releaseService "smartpark/internal/domains/release/service"
	sessionRepository "smartpark/internal/domains/session/repository"
	sessionService "smartpark/internal/domains/session/service"
	slotRepository "smartpark/internal/domains/slot/repository"
	slotService "smartpark/internal/domains/slot/service"

	adminHandler "smartpark/internal/handlers/admin"
	parkingHandler "smartpark/internal/handlers/parking"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	timezone.NewClock,
)

var integrations = wire.NewSet(
	notifier.New,
)

var slotDomain = wire.NewSet(
	slotRepository.New,
	slotService.New,
)

var sessionDomain = wire.NewSet(
	sessionRepository.New,
	sessionService.New,
)

var auditDomain = wire.NewSet(
	auditRepository.New,
	auditService.New,
)

var domains = wire.NewSet(
	slotDomain,
	sessionDomain,
	auditDomain,
	allocationService.New,
	releaseService.New,
	alertService.New,
	authService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	parkingHandler.New,
	adminHandler.New,
	router.New,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		integrations,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
