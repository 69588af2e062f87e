// Package server initializes and runs the carebook API: it opens the
// database, applies migrations, wires services into the HTTP router and
// shuts everything down on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/carebook/internal/logging"
	"github.com/dmitrijs2005/carebook/internal/server/auth"
	"github.com/dmitrijs2005/carebook/internal/server/config"
	"github.com/dmitrijs2005/carebook/internal/server/credentials"
	"github.com/dmitrijs2005/carebook/internal/server/httpapi"
	"github.com/dmitrijs2005/carebook/internal/server/metrics"
	"github.com/dmitrijs2005/carebook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/carebook/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Seams for tests.
var (
	logOutput io.Writer = os.Stdout

	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}

	newRepositoryManager = func(db *sql.DB) (repomanager.RepositoryManager, error) {
		return repomanager.NewPostgresRepositoryManager(db)
	}
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.HTTPServer
}

// NewLogger builds the JSON logger every entry point uses.
func NewLogger(c *config.Config) logging.Logger {
	return logging.NewJSON(logOutput, c.LogLevel)
}

// NewHasher maps the configured Argon2id cost onto a credentials.Hasher.
func NewHasher(c *config.Config) *credentials.Hasher {
	return credentials.NewHasher(credentials.Params{
		Memory:      c.Argon2Memory,
		Iterations:  c.Argon2Iterations,
		Parallelism: c.Argon2Parallelism,
	})
}

// ConnectDatabase opens and pings the store and builds the repository
// manager. The schema is left untouched.
func ConnectDatabase(ctx context.Context, c *config.Config) (*sql.DB, repomanager.RepositoryManager, error) {
	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	rm, err := newRepositoryManager(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}
	return db, rm, nil
}

// OpenDatabase connects and brings the schema up to date.
func OpenDatabase(ctx context.Context, c *config.Config) (*sql.DB, repomanager.RepositoryManager, error) {
	db, rm, err := ConnectDatabase(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrations error: %w", err)
	}
	return db, rm, nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := NewLogger(c)

	db, rm, err := OpenDatabase(ctx, c)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	issuer := auth.NewIssuer(c.SecretKey, c.AccessTokenValidityDuration)

	router := httpapi.NewRouter(httpapi.Deps{
		Identities:   services.NewIdentityService(db, rm, NewHasher(c), issuer, logger, m),
		Appointments: services.NewAppointmentService(db, rm, logger),
		Reports:      services.NewReportService(db, rm, logger),
		Exercises:    services.NewExerciseService(db, rm, logger),
		Tokens:       issuer,
		Metrics:      m,
		Log:          logger,
		CORSOrigin:   c.CORSOrigin,
	})

	return &App{
		config: c,
		logger: logger,
		db:     db,
		http:   httpapi.NewHTTPServer(c.EndpointAddrHTTP, router, c.ShutdownTimeout, logger),
	}, nil
}

// Run blocks until ctx is cancelled or a termination signal arrives, then
// stops the HTTP server and closes the database handle.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	runErr := app.http.Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, "http server failed", "error", runErr)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close failed", "error", err)
	}
	app.logger.Info(ctx, "App stopped")

	return runErr
}
