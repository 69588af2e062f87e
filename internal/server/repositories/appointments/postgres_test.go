package appointments

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/carebook/internal/common"
	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQuery = `(?s)^INSERT\s+INTO\s+appointment\s*\(day_date,\s*schedule,\s*via,\s*user_id,\s*profesional_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id,\s*created_date\s*$`

func booking() *models.Appointment {
	return &models.Appointment{DayDate: "2025-03-10", Schedule: "10:00", Via: "zoom", UserID: "u-1", ProfesionalID: "p-1"}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(insertQuery).
		WithArgs("2025-03-10", "10:00", "zoom", "u-1", "p-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_date"}).AddRow("a-1", now))

	got, err := repo.Create(context.Background(), booking())
	require.NoError(t, err)
	assert.Equal(t, "a-1", got.ID)
	assert.Equal(t, now, got.CreatedDate)
}

func TestCreate_UnknownPerson(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.Create(context.Background(), booking())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), booking())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db down")
}

func TestListByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)FROM\s+appointment\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_date", "day_date", "schedule", "via", "user_id", "profesional_id"}).
			AddRow("a-1", now, "2025-03-10", "10:00", "zoom", "u-1", "p-1"))

	got, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p-1", got[0].ProfesionalID)
}

func TestListByUser_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+appointment`).WillReturnError(errors.New("db down"))

	_, err := repo.ListByUser(context.Background(), "u-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestMemoryRepository(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepository()
	ctx := context.Background()

	a, err := repo.Create(ctx, booking())
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)

	other := booking()
	other.UserID = "u-2"
	_, err = repo.Create(ctx, other)
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	empty, err := repo.ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
