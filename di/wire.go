//go:build wireinject
// +build wireinject

package di

import (
	"stay/config"
	"stay/infras/gateway"
	"stay/infras/kafka"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/infras/redis"
	"stay/infras/session"
	bookingHandler "stay/internal/handlers/booking"
	healthHandler "stay/internal/handlers/health"
	roomTypeHandler "stay/internal/handlers/roomtype"
	"stay/shared/cache"
	"stay/transport/http"
	"stay/transport/http/middleware"
	"stay/transport/http/router"

	bookingService "stay/internal/domains/booking/service"
	bookingStore "stay/internal/domains/booking/store"
	roomTypeRepository "stay/internal/domains/roomtype/repository"
	roomTypeService "stay/internal/domains/roomtype/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	session.New,
	gateway.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewSessionMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomTypeDomain = wire.NewSet(
	roomTypeRepository.New,
	roomTypeService.New,
)

var bookingDomain = wire.NewSet(
	bookingStore.NewDrafts,
	bookingStore.NewPending,
	bookingService.New,
)

var domains = wire.NewSet(
	roomTypeDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	roomTypeHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
