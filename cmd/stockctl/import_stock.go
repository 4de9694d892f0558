package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stock-api/internal/application/stock"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/infrastructure/csvimport"
	"github.com/jhoicas/stock-api/internal/infrastructure/postgres"
)

func newImportStockCmd() *cobra.Command {
	var (
		username string
		file     string
		latin1   bool
	)
	cmd := &cobra.Command{
		Use:   "import-stock",
		Short: "Carga stock desde CSV (name,quantity,department,par_level,reason)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("abrir %s: %w", file, err)
			}
			defer f.Close()
			rows, err := csvimport.Read(f, latin1)
			if err != nil {
				return fmt.Errorf("leer %s: %w", file, err)
			}

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

			ledger := stock.NewLedger(postgres.NewTxRunner(pool), e.log.Named("ledger"))
			uc := usecase.NewImportUseCase(postgres.NewUserRepository(pool), postgres.NewDepartmentRepository(pool), ledger, e.log.Named("import"))
			res, err := uc.Import(ctx, username, rows)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "importadas %d de %d filas\n", res.Imported, len(rows))
			for _, fe := range res.Failed {
				fmt.Fprintf(out, "  %v\n", fe)
			}
			if len(res.Failed) > 0 {
				return fmt.Errorf("%d filas con error", len(res.Failed))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "user", "", "usuario warehouse que registra la carga")
	cmd.Flags().StringVar(&file, "file", "", "ruta del CSV")
	cmd.Flags().BoolVar(&latin1, "latin1", false, "el archivo está en ISO-8859-1")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
