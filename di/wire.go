//go:build wireinject
// +build wireinject

package di

import (
	"todoapi/config"
	"todoapi/infras/otel"
	"todoapi/infras/postgres"
	"todoapi/infras/redis"
	todoHandler "todoapi/internal/handlers/todo"
	"todoapi/shared/cache"
	"todoapi/transport/http"
	"todoapi/transport/http/middleware"
	"todoapi/transport/http/router"

	todoRepository "todoapi/internal/domains/todo/repository"
	todoService "todoapi/internal/domains/todo/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var todoDomain = wire.NewSet(
	todoRepository.New,
	todoService.New,
)

var domains = wire.NewSet(
	todoDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	todoHandler.New,
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
