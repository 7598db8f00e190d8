package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoicer/pkg/jwt"
)

func newTokenCmd() *cobra.Command {
	var (
		user    string
		plan    string
		minutes int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT de desarrollo firmado con JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if user == "" {
				return fmt.Errorf("--user es obligatorio")
			}
			cfg, _, err := loadRuntime()
			if err != nil {
				return err
			}
			if minutes <= 0 {
				minutes = cfg.JWT.Expiration
			}
			tok, err := jwt.Generate(cfg.JWT.Secret, user, plan, cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user_id (dueño de las facturas)")
	cmd.Flags().StringVar(&plan, "plan", "free", "plan del usuario")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "vigencia en minutos (por defecto JWT_EXPIRATION)")
	return cmd
}
