package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"stockroom/internal/database"
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

// Update must write only name and price; a full-row save would stamp
// the quantity read earlier over any stock movement that landed since.
func TestUpdateTouchesOnlyNameAndPrice(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products" SET "name"=\$1,"price"=\$2 WHERE id = \$3`).
		WithArgs("Denim Jacket", 9000, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sku", "name", "price", "quantity"}).
			AddRow(2, "JKT002", "Denim Jacket", 9000, 17))

	updated, err := NewService(db).Update(2, "Denim Jacket", 9000)
	require.NoError(t, err)

	assert.Equal(t, "Denim Jacket", updated.Name)
	assert.Equal(t, 9000, updated.Price)
	assert.Equal(t, 17, updated.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUnknownProduct(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products" SET "name"=\$1,"price"=\$2 WHERE id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := NewService(db).Update(99, "Ghost", 100)

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateSKU(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "products"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := NewService(db).Create("TSH001", "Basic T-Shirt", 2500, 50)

	assert.ErrorIs(t, err, ErrSKUTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboundDepletedStock(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE products SET quantity = quantity - \$1 WHERE id = \$2 AND quantity >= \$3`).
		WithArgs(5, 3, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sku", "name", "price", "quantity"}).
			AddRow(3, "MUG003", "Coffee Mug", 1200, 2))

	err := NewService(db).Outbound(3, 5)

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}
