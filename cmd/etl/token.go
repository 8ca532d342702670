package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-etl/pkg/jwt"
)

func newTokenCmd(a *app) *cobra.Command {
	var (
		subject string
		role    string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT para llamar POST /api/ingest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := jwt.Generate(a.cfg.JWT.Secret, subject, role, a.cfg.JWT.Issuer, a.cfg.JWT.Expiration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "scheduler", "subject del token")
	cmd.Flags().StringVar(&role, "role", jwt.RoleETL, "rol del token")
	return cmd
}
