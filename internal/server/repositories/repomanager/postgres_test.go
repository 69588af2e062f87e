package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/carebook/internal/dbx"
	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/dmitrijs2005/carebook/internal/server/repositories/appointments"
	"github.com/dmitrijs2005/carebook/internal/server/repositories/exercises"
	"github.com/dmitrijs2005/carebook/internal/server/repositories/identities"
	"github.com/dmitrijs2005/carebook/internal/server/repositories/reports"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m, err := NewPostgresRepositoryManager(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var _ RepositoryManager = m
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := &PostgresRepositoryManager{}

	assert.IsType(t, &identities.PostgresRepository{}, m.Identities(db))
	assert.IsType(t, &appointments.PostgresRepository{}, m.Appointments(db))
	assert.IsType(t, &reports.PostgresRepository{}, m.Reports(db))
	assert.IsType(t, &exercises.PostgresRepository{}, m.Exercises(db))
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestMemoryRepositoryManager_SharesStores(t *testing.T) {
	t.Parallel()
	m := NewMemoryRepositoryManager()
	var _ RepositoryManager = m

	assert.Same(t, m.IdentityStore(), m.Identities(nil))
	assert.Same(t, m.Identities(nil), m.Identities(nil))
	assert.NotNil(t, m.Appointments(nil))
	assert.NotNil(t, m.Reports(nil))
	assert.NotNil(t, m.Exercises(nil))
	assert.NoError(t, m.RunMigrations(context.Background(), nil))
}

// The memory stores are not transactional: a write made inside a rolled back
// transaction stays visible.
func TestMemoryRepositoryManager_IgnoresRollback(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()
	m := NewMemoryRepositoryManager()

	mock.ExpectBegin()
	mock.ExpectRollback()
	boom := errors.New("boom")
	err := dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := m.Identities(tx).Insert(ctx, &models.Identity{Email: "a@x.com", Role: models.RoleUser}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, m.IdentityStore().Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}
