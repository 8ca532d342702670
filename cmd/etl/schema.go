package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-etl/internal/infrastructure/postgres"
)

func newSchemaCmd(a *app) *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Crea las tablas normalizadas si no existen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printOnly {
				fmt.Fprint(cmd.OutOrStdout(), postgres.Schema())
				return nil
			}
			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, a.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				return err
			}
			a.log.Info().Msg("esquema listo")
			return nil
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "imprime el DDL sin conectarse")
	return cmd
}
