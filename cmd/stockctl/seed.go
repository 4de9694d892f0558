package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stock-api/internal/application/stock"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/infrastructure/postgres"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Crea la empresa de ejemplo (ExampleCorp) con usuarios admin/worker/tech",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pool, err := e.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			departments := postgres.NewDepartmentRepository(pool)
			roles := postgres.NewRoleRepository(pool)
			companies := usecase.NewCompanyUseCase(postgres.NewCompanyRepository(pool), departments, roles)
			users := usecase.NewUserUseCase(postgres.NewUserRepository(pool), roles, departments)
			ledger := stock.NewLedger(postgres.NewTxRunner(pool), e.log.Named("ledger"))

			res, err := usecase.NewSeedUseCase(companies, users, ledger, e.log.Named("seed")).Run(ctx)
			if errors.Is(err, domain.ErrDuplicate) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s ya existe, nada que hacer\n", usecase.SeedCompany)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "empresa %s (%s)\n", res.Tenant.Company.Name, res.Tenant.Company.ID)
			for _, u := range res.Users {
				fmt.Fprintf(cmd.OutOrStdout(), "  usuario %-8s rol %s\n", u.Username, u.Role)
			}
			return nil
		},
	}
}
