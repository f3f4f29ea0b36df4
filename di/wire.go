//go:build wireinject
// +build wireinject

package di

import (
	"labbook/config"
	"labbook/infras/jwt"
	"labbook/infras/kafka"
	"labbook/infras/otel"
	"labbook/infras/postgres"
	"labbook/infras/redis"
	"labbook/infras/s3"
	"labbook/infras/stripe"
	"labbook/permissions"
	"labbook/shared/cache"
	"labbook/transport/http"
	"labbook/transport/http/middleware"
	"labbook/transport/http/router"

	"github.com/google/wire"

	appointmentRepository "labbook/internal/domains/appointment/repository"
	appointmentService "labbook/internal/domains/appointment/service"
	authService "labbook/internal/domains/auth/service"
	bannerRepository "labbook/internal/domains/banner/repository"
	bannerService "labbook/internal/domains/banner/service"
	paymentService "labbook/internal/domains/payment/service"
	statisticsService "labbook/internal/domains/statistics/service"
	testRepository "labbook/internal/domains/test/repository"
	testService "labbook/internal/domains/test/service"
	userRepository "labbook/internal/domains/user/repository"
	userService "labbook/internal/domains/user/service"

	appointmentHandler "labbook/internal/handlers/appointment"
	authHandler "labbook/internal/handlers/auth"
	bannerHandler "labbook/internal/handlers/banner"
	paymentHandler "labbook/internal/handlers/payment"
	statisticsHandler "labbook/internal/handlers/statistics"
	testHandler "labbook/internal/handlers/test"
	userHandler "labbook/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	stripe.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var testDomain = wire.NewSet(
	testRepository.New,
	testService.New,
	testService.NewInventory,
)

var bannerDomain = wire.NewSet(
	bannerRepository.New,
	bannerService.New,
	wire.Bind(new(appointmentService.CouponFinder), new(bannerService.Banner)),
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentRepository.NewCancelled,
	appointmentService.New,
	paymentService.New,
	statisticsService.New,
)

var domains = wire.NewSet(
	userDomain,
	testDomain,
	bannerDomain,
	appointmentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	testHandler.New,
	bannerHandler.New,
	appointmentHandler.New,
	paymentHandler.New,
	statisticsHandler.New,
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
