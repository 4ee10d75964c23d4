package main

import (
	"context"
	"log/slog"
	"os"

	"vyapkart/config"
	"vyapkart/internal/delivery"
	"vyapkart/internal/delivery/api"
	"vyapkart/internal/delivery/api/middleware"
	"vyapkart/internal/delivery/api/router/handler"
	"vyapkart/internal/domain/constants"
	"vyapkart/internal/domain/service"
	"vyapkart/internal/errors"
	"vyapkart/internal/infra/auth"
	"vyapkart/internal/infra/auth/firebase"
	"vyapkart/internal/infra/auth/google"
	logs "vyapkart/internal/infra/log"
	"vyapkart/internal/infra/persistence/postgres"
	"vyapkart/internal/infra/pubsub"
	"vyapkart/internal/metrics"
	"vyapkart/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			postgres.RegisterMigrations,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			metrics.New,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
			postgres.NewRoleRepository,
			postgres.NewSellerRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			newIdentityVerifier,
			metrics.NewReconciliationMetrics,
		),
	)
}

// newIdentityVerifier selects the identity provider named by identity.provider.
func newIdentityVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.IdentityVerifier, error) {
	switch cfg.Identity.Provider {
	case constants.IdentityProviderFirebase:
		return firebase.NewVerifier(ctx, cfg, logger)
	case constants.IdentityProviderGoogle:
		return google.NewAuthService(ctx, cfg, logger)
	default:
		return nil, errors.Errorf("unsupported identity provider: %s", cfg.Identity.Provider)
	}
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewProvisioner,
			impl.NewAuthService,
			impl.NewAccountService,
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
			handler.NewAccountHandler,
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

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
