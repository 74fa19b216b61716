package main

import (
	"context"
	"log/slog"
	"os"

	"quizauth/config"
	"quizauth/internal/delivery"
	"quizauth/internal/delivery/api"
	"quizauth/internal/delivery/api/middleware"
	"quizauth/internal/delivery/api/router/handler"
	"quizauth/internal/domain/repository"
	"quizauth/internal/domain/service"
	"quizauth/internal/infra/auth"
	logs "quizauth/internal/infra/log"
	"quizauth/internal/infra/metrics"
	"quizauth/internal/infra/persistence/memory"
	"quizauth/internal/infra/persistence/postgres"
	"quizauth/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	flags, err := config.NewFlagSet(os.Args[0], os.Args[1:])
	if err != nil {
		slog.Error("Failed to parse flags", slog.Any("error", err))
		os.Exit(2)
	}

	cfg, err := config.New(flags)
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	fx.New(
		fx.Supply(cfg),
		injectInfra(),
		injectRepo(cfg),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		logs.New,
		context.Background,
		metrics.New,
	)
}

func injectRepo(cfg *config.Config) fx.Option {
	if cfg.Store.Driver == config.StoreDriverMemory {
		return fx.Provide(
			fx.Annotate(
				memory.NewUserRepository,
				fx.As(new(repository.UserRepository)),
			),
		)
	}

	return fx.Options(
		fx.Provide(
			postgres.New,
			postgres.NewUserRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newAuthMetrics,
		),
	)
}

// newAuthMetrics exposes the Prometheus collectors to the usecase layer.
func newAuthMetrics(m *metrics.Metrics) service.AuthMetrics {
	return m
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startServer serves every delivery once the store hooks (ping, migrations) have run.
func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, delivery := range params.Deliveries {
				go func() {
					if err := delivery.Serve(ctx); err != nil {
						slog.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
