//go:build wireinject
// +build wireinject

package di

import (
	"parkflow/config"
	"parkflow/infras/geocode"
	"parkflow/infras/jwt"
	"parkflow/infras/kafka"
	"parkflow/infras/otel"
	"parkflow/infras/postgres"
	"parkflow/infras/redis"
	"parkflow/infras/s3"
	"parkflow/permissions"
	"parkflow/shared/cache"
	"parkflow/shared/changefeed"
	"parkflow/transport/http"
	"parkflow/transport/http/middleware"
	"parkflow/transport/http/router"

	"github.com/google/wire"

	authService "parkflow/internal/domains/auth/service"
	bookingRepository "parkflow/internal/domains/booking/repository"
	bookingService "parkflow/internal/domains/booking/service"
	businessService "parkflow/internal/domains/business/service"
	geocodeService "parkflow/internal/domains/geocode/service"
	lotRepository "parkflow/internal/domains/lot/repository"
	lotService "parkflow/internal/domains/lot/service"
	userRepository "parkflow/internal/domains/user/repository"
	authHandler "parkflow/internal/handlers/auth"
	bookingHandler "parkflow/internal/handlers/booking"
	businessHandler "parkflow/internal/handlers/business"
	feedHandler "parkflow/internal/handlers/feed"
	geocodeHandler "parkflow/internal/handlers/geocode"
	healthHandler "parkflow/internal/handlers/health"
	lotHandler "parkflow/internal/handlers/lot"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	geocode.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	changefeed.New,
	changefeed.NewPublisher,
)

var lotDomain = wire.NewSet(
	lotRepository.New,
	lotService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
	businessService.New,
	geocodeService.New,
)

var domains = wire.NewSet(
	lotDomain,
	bookingDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	lotHandler.New,
	bookingHandler.New,
	businessHandler.New,
	geocodeHandler.New,
	feedHandler.New,
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
