package sales

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"stockroom/internal/database"
	"stockroom/internal/platform/product"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := database.Open(postgres.New(postgres.Config{Conn: sqlDB}))
	require.NoError(t, err)

	return db, mock
}

func TestRecordCommitsSaleAndDecrement(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sku", "name", "price", "quantity"}).
			AddRow(1, "TSH001", "Basic T-Shirt", 2500, 50))
	mock.ExpectQuery(`INSERT INTO "sales_history"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(`UPDATE products SET quantity = quantity - \$1 WHERE id = \$2 AND quantity >= \$3`).
		WithArgs(3, 1, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sale, err := NewService(db).Record(1, 3, 2500)
	require.NoError(t, err)

	assert.Equal(t, 11, sale.ID)
	assert.Equal(t, "Basic T-Shirt", sale.ProductName)
	assert.Equal(t, 7500, sale.TotalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The stock read at the top of the transaction can go stale the moment
// it returns; when the guarded decrement then finds less stock than the
// sale needs, the whole transaction must roll back, sale row included.
func TestRecordRollsBackWhenStockDrainedConcurrently(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sku", "name", "price", "quantity"}).
			AddRow(1, "TSH001", "Basic T-Shirt", 2500, 2))
	mock.ExpectQuery(`INSERT INTO "sales_history"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectExec(`UPDATE products SET quantity = quantity - \$1 WHERE id = \$2 AND quantity >= \$3`).
		WithArgs(2, 1, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := NewService(db).Record(1, 2, 2500)

	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRejectsKnownShortStock(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sku", "name", "price", "quantity"}).
			AddRow(1, "TSH001", "Basic T-Shirt", 2500, 1))
	mock.ExpectRollback()

	_, err := NewService(db).Record(1, 5, 2500)

	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}
