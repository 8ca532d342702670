package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-etl/pkg/config"
	"github.com/jhoicas/invoice-etl/pkg/logger"
)

var version = "1.0.0"

// app dependencias compartidas por los subcomandos.
type app struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var logLevel string

	root := &cobra.Command{
		Use:   "etl",
		Short: "Normaliza extracciones de facturas en JSON hacia PostgreSQL",
		Long: `etl lee archivos JSON producidos por el pipeline de extracción de facturas
y los normaliza en las tablas vendors, customers, invoices, payments e
invoice_line_items. Cada registro se procesa en su propio savepoint: un
registro inválido se revierte y se cuenta sin abortar el lote.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			a.cfg = cfg
			a.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "nivel de log (trace, debug, info, warn, error)")

	root.AddCommand(
		newIngestCmd(a),
		newSchemaCmd(a),
		newServeCmd(a),
		newTokenCmd(a),
	)
	return root
}
