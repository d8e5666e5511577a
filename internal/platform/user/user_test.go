package user

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"stockroom/internal/database"
	"stockroom/pkg/passwd"
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

// Create must go straight to the insert; a lookup before it would leave
// a window for two racing creates to both pass.
func TestCreateInsertsWithoutExistenceQuery(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	user, err := NewService(db).Create("alice", "s3cret-pass", database.RoleStaff)
	require.NoError(t, err)

	assert.Equal(t, 7, user.ID)
	assert.True(t, passwd.Verify("s3cret-pass", user.PasswordHash))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := NewService(db).Create("alice", "s3cret-pass", database.RoleStaff)

	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePasswordHashUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "password_hash"=\$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := NewService(db).UpdatePasswordHash(42, passwd.Hash("whatever-pass"))

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
