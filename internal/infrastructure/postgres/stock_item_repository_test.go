package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var testTime = time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

func intPtr(n int) *int { return &n }

// anyArgs n comodines para WithArgs cuando solo importa la cantidad de parámetros.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func stockItemRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "company_id", "department_id", "name", "quantity", "par_level",
		"is_faulty", "is_deleted", "created_at", "updated_at",
	})
}

func TestStockItemRepo_GetForUpdate(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(pgxmock.PgxPoolIface)
		want      *entity.StockItem
	}{
		{
			name: "fila bloqueada",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM stock_items\s+WHERE company_id = \$1 AND id = \$2 AND is_deleted = FALSE\s+FOR UPDATE`).
					WithArgs("c-1", "i-1").
					WillReturnRows(stockItemRows().AddRow("i-1", "c-1", "d-1", "Laptop", 5, intPtr(2), false, false, testTime, testTime))
			},
			want: &entity.StockItem{
				ID: "i-1", CompanyID: "c-1", DepartmentID: "d-1", Name: "Laptop", Quantity: 5, ParLevel: intPtr(2),
				CreatedAt: testTime, UpdatedAt: testTime,
			},
		},
		{
			name: "no existe o está borrado",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM stock_items`).
					WithArgs("c-1", "i-1").
					WillReturnRows(stockItemRows())
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.mockSetup(mock)

			got, err := NewStockItemRepository(mock).GetForUpdate(context.Background(), "c-1", "i-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStockItemRepo_CreateIfAbsent(t *testing.T) {
	item := &entity.StockItem{ID: "i-1", CompanyID: "c-1", DepartmentID: "d-1", Name: "Laptop", Quantity: 5, CreatedAt: testTime, UpdatedAt: testTime}

	tests := []struct {
		name        string
		mockSetup   func(pgxmock.PgxPoolIface)
		wantCreated bool
		wantErr     error
	}{
		{
			name: "insertado",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO stock_items [\s\S]*ON CONFLICT \(company_id, department_id, name\) WHERE is_deleted = FALSE DO NOTHING`).
					WithArgs("i-1", "c-1", "d-1", "Laptop", 5, (*int)(nil), false, false, testTime, testTime).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
			wantCreated: true,
		},
		{
			name: "otro activo con el mismo nombre",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stock_items")).
					WithArgs(anyArgs(10)...).
					WillReturnResult(pgxmock.NewResult("INSERT", 0))
			},
		},
		{
			name: "check de cantidad",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stock_items")).
					WithArgs(anyArgs(10)...).
					WillReturnError(&pgconn.PgError{Code: "23514"})
			},
			wantErr: domain.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.mockSetup(mock)

			created, err := NewStockItemRepository(mock).CreateIfAbsent(context.Background(), item)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCreated, created)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStockItemRepo_LockForTransfer(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// El destino tiene id menor: sale primero y se bloquea primero.
	mock.ExpectQuery(`AND \(id = \$2 OR \(department_id = \$3 AND name = \$4\)\)\s+ORDER BY id\s+FOR UPDATE`).
		WithArgs("c-1", "i-2", "d-2", "Laptop").
		WillReturnRows(stockItemRows().
			AddRow("i-1", "c-1", "d-2", "Laptop", 1, (*int)(nil), false, false, testTime, testTime).
			AddRow("i-2", "c-1", "d-1", "Laptop", 4, intPtr(2), false, false, testTime, testTime))

	src, dst, err := NewStockItemRepository(mock).LockForTransfer(context.Background(), "c-1", "i-2", "d-2", "Laptop")
	require.NoError(t, err)
	require.NotNil(t, src)
	require.NotNil(t, dst)
	assert.Equal(t, "i-2", src.ID)
	assert.Equal(t, 4, src.Quantity)
	assert.Equal(t, "i-1", dst.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockItemRepo_LockForTransfer_SinDestino(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`ORDER BY id\s+FOR UPDATE`).
		WithArgs("c-1", "i-2", "d-2", "Laptop").
		WillReturnRows(stockItemRows().
			AddRow("i-2", "c-1", "d-1", "Laptop", 4, (*int)(nil), false, false, testTime, testTime))

	src, dst, err := NewStockItemRepository(mock).LockForTransfer(context.Background(), "c-1", "i-2", "d-2", "Laptop")
	require.NoError(t, err)
	assert.Equal(t, "i-2", src.ID)
	assert.Nil(t, dst)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockItemRepo_Update(t *testing.T) {
	item := &entity.StockItem{ID: "i-1", CompanyID: "c-1", Quantity: -1, UpdatedAt: testTime}

	tests := []struct {
		name      string
		mockSetup func(pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "check de cantidad",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE stock_items")).
					WithArgs(anyArgs(7)...).
					WillReturnError(&pgconn.PgError{Code: "23514"})
			},
			wantErr: domain.ErrInsufficientStock,
		},
		{
			name: "sin filas",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE stock_items")).
					WithArgs("c-1", "i-1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "ok",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE stock_items")).
					WithArgs("c-1", "i-1", -1, (*int)(nil), false, false, testTime).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.mockSetup(mock)

			err = NewStockItemRepository(mock).Update(context.Background(), item)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStockItemListQuery(t *testing.T) {
	before := testTime
	t.Run("filtros combinados", func(t *testing.T) {
		sql, args, err := stockItemListQuery(repository.StockItemFilter{
			CompanyID: "c-1", DepartmentID: "d-1", BelowPar: true, CreatedBefore: &before, Status: repository.FaultStatusOK,
		}).ToSQL()
		require.NoError(t, err)

		assert.Contains(t, sql, `"s"."company_id" = $1`)
		assert.Contains(t, sql, `"s"."department_id"`)
		assert.Contains(t, sql, "s.par_level IS NOT NULL AND s.quantity < s.par_level")
		assert.Contains(t, sql, `"s"."created_at" <`)
		assert.Contains(t, sql, `ORDER BY "s"."name" ASC`)
		assert.Contains(t, sql, `"s"."is_faulty" IS FALSE`)
		assert.NotContains(t, sql, "assignments")
		assert.Contains(t, args, "c-1")
		assert.Contains(t, args, "d-1")
	})

	t.Run("asignados a usuario ignora el resto", func(t *testing.T) {
		sql, args, err := stockItemListQuery(repository.StockItemFilter{
			CompanyID: "c-1", AssignedToUserID: "u-9", BelowPar: true, Status: repository.FaultStatusFaulty,
		}).ToSQL()
		require.NoError(t, err)

		assert.Contains(t, sql, "EXISTS (SELECT 1 FROM assignments a")
		assert.NotContains(t, sql, "par_level IS NOT NULL")
		assert.NotContains(t, sql, `"s"."is_faulty" IS`)
		assert.Contains(t, args, "u-9")
	})
}

func TestStockItemRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "stock_items" AS "s"`)).
		WithArgs("c-1").
		WillReturnRows(stockItemRows().
			AddRow("i-1", "c-1", "d-1", "Laptop", 1, intPtr(2), false, false, testTime, testTime).
			AddRow("i-2", "c-1", "d-1", "Phone", 3, (*int)(nil), true, false, testTime, testTime))

	list, err := NewStockItemRepository(mock).List(context.Background(), repository.StockItemFilter{CompanyID: "c-1"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].BelowPar())
	assert.True(t, list[1].IsFaulty)
	assert.Nil(t, list[1].ParLevel)
	assert.NoError(t, mock.ExpectationsWereMet())
}
