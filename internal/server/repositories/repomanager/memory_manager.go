package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/carebook/internal/dbx"
	"github.com/dmitrijs2005/carebook/internal/server/repositories/appointments"
	"github.com/dmitrijs2005/carebook/internal/server/repositories/exercises"
	"github.com/dmitrijs2005/carebook/internal/server/repositories/identities"
	"github.com/dmitrijs2005/carebook/internal/server/repositories/reports"
)

// MemoryRepositoryManager hands out the same in-memory repositories whatever
// DBTX it is given. It backs the service, HTTP and wiring tests; the server
// and admin binaries always use PostgresRepositoryManager.
//
// Writes are not undone when the surrounding transaction rolls back, so it
// must not stand in for Postgres where rollback matters.
type MemoryRepositoryManager struct {
	identities   *identities.MemoryRepository
	appointments *appointments.MemoryRepository
	reports      *reports.MemoryRepository
	exercises    *exercises.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		identities:   identities.NewMemoryRepository(),
		appointments: appointments.NewMemoryRepository(),
		reports:      reports.NewMemoryRepository(),
		exercises:    exercises.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Identities(dbx.DBTX) identities.Repository { return m.identities }

func (m *MemoryRepositoryManager) Appointments(dbx.DBTX) appointments.Repository {
	return m.appointments
}

func (m *MemoryRepositoryManager) Reports(dbx.DBTX) reports.Repository { return m.reports }

func (m *MemoryRepositoryManager) Exercises(dbx.DBTX) exercises.Repository { return m.exercises }

// IdentityStore exposes the concrete identity store, mostly for tests that
// count rows.
func (m *MemoryRepositoryManager) IdentityStore() *identities.MemoryRepository {
	return m.identities
}
