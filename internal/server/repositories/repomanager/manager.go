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

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Identities(db dbx.DBTX) identities.Repository
	Appointments(db dbx.DBTX) appointments.Repository
	Reports(db dbx.DBTX) reports.Repository
	Exercises(db dbx.DBTX) exercises.Repository
}
