package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/stock-api/internal/infrastructure/postgres"
)

func newMigrateCmd() *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones embebidas",
		Long:  `Aplica todas las migraciones pendientes. Con --down revierte solo la última.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			return postgres.Migrate(e.cfg.DB.ConnectionString(), down, e.log.Named("migrate"))
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "revertir un paso")
	return cmd
}
