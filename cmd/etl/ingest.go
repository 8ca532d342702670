package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-etl/internal/application/etl"
	"github.com/jhoicas/invoice-etl/internal/infrastructure/postgres"
)

func newIngestCmd(a *app) *cobra.Command {
	var (
		source       string
		dryRun       bool
		ensureSchema bool
		timeout      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Procesa todos los archivos de la carpeta de origen en un lote",
		Example: `  # Carpeta por defecto (ETL_SOURCE_DIR, ./data)
  etl ingest

  # Otra carpeta, sin confirmar cambios
  etl ingest --source ./exports --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" {
				source = a.cfg.ETL.SourceDir
			}
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			pool, err := postgres.NewPool(ctx, a.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			if ensureSchema {
				if err := postgres.EnsureSchema(ctx, pool); err != nil {
					return err
				}
			}

			ingestor := etl.NewIngestor(
				postgres.NewTxManager(pool),
				etl.NewNormalizer(a.cfg.ETL.DefaultCurrency),
				etl.Options{Extension: a.cfg.ETL.FileExtension, DryRun: dryRun},
				a.log.WithComponent("ingest"),
			)
			report, err := ingestor.Ingest(ctx, source)
			if report != nil {
				fmt.Fprint(cmd.OutOrStdout(), report.Summary())
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "", "carpeta con los JSON (por defecto ETL_SOURCE_DIR)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "procesa todo y revierte el lote al final")
	cmd.Flags().BoolVar(&ensureSchema, "ensure-schema", false, "crea las tablas si no existen antes de ingerir")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "tiempo máximo de la corrida (0 = sin límite)")
	return cmd
}
