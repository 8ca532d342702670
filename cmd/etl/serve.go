package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	appanalytics "github.com/jhoicas/invoice-etl/internal/application/analytics"
	"github.com/jhoicas/invoice-etl/internal/application/etl"
	"github.com/jhoicas/invoice-etl/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/invoice-etl/internal/interfaces/http"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expone la API de analítica y el disparador de ingesta",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			log := a.log
			log.Info().Str("env", cfg.App.Env).Str("app", cfg.App.Name).Msg("iniciando servidor")

			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			dashboardUC := appanalytics.NewDashboardUseCase(postgres.NewAnalyticsRepository(pool))

			var runner httpRouter.IngestRunner
			if cfg.JWT.Secret != "" {
				ingestor := etl.NewIngestor(
					postgres.NewTxManager(pool),
					etl.NewNormalizer(cfg.ETL.DefaultCurrency),
					etl.Options{Extension: cfg.ETL.FileExtension},
					log.WithComponent("ingest"),
				)
				runner = etl.NewRunner(ingestor, cfg.ETL.SourceDir)
			} else {
				log.Warn().Msg("JWT_SECRET vacío: rutas de ingesta deshabilitadas")
			}

			server := fiber.New(fiber.Config{
				AppName:      cfg.App.Name,
				ReadTimeout:  time.Second * 10,
				WriteTimeout: time.Minute * 10,
				IdleTimeout:  time.Second * 60,
			})
			server.Use(recover.New())

			httpRouter.Router(server, httpRouter.RouterDeps{
				AppName:   cfg.App.Name,
				Dashboard: dashboardUC,
				Ingest:    runner,
				JWTSecret: cfg.JWT.Secret,
			})

			go func() {
				if err := server.Listen(cfg.HTTP.Addr()); err != nil {
					log.Error().Err(err).Msg("servidor HTTP finalizado")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			log.Info().Msg("señal de apagado recibida, cerrando servidor...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.ShutdownWithContext(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("apagado del servidor")
			}
			log.Info().Msg("servidor detenido")
			return nil
		},
	}
}
