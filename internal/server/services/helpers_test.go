package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/carebook/internal/dbx"
	"github.com/dmitrijs2005/carebook/internal/logging"
	"github.com/dmitrijs2005/carebook/internal/server/auth"
	"github.com/dmitrijs2005/carebook/internal/server/credentials"
	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/dmitrijs2005/carebook/internal/server/repositories/identities"
	"github.com/dmitrijs2005/carebook/internal/server/repositories/repomanager"
)

const testSecret = "k"

var testParams = credentials.Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *fakeRecorder) Observe(op, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = make(map[string]int)
	}
	r.counts[op+"/"+outcome]++
}

func (r *fakeRecorder) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[key]
}

func newIdentityService(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager) (*IdentityService, *fakeRecorder) {
	t.Helper()
	rec := &fakeRecorder{}
	s := NewIdentityService(db, rm, credentials.NewHasher(testParams),
		auth.NewIssuer(testSecret, time.Hour), logging.Nop{}, rec)
	return s, rec
}

// seed inserts an identity directly into the memory store, bypassing
// hashing. Only the fields the care services look at are set.
func seed(t *testing.T, rm *repomanager.MemoryRepositoryManager, email string, role models.Role) *models.Identity {
	t.Helper()
	created, err := rm.IdentityStore().Insert(context.Background(), &models.Identity{
		Name: "N", LastName: "L", Email: email, Role: role, Salt: "s", PasswordHash: "h",
	})
	if err != nil {
		t.Fatalf("seed %s: %v", email, err)
	}
	return created
}

// fakeIdentities lets tests inject store failures.
type fakeIdentities struct {
	identities.Repository
	findErr   error
	insertErr error
}

func (f *fakeIdentities) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.Repository.FindByEmail(ctx, email)
}

func (f *fakeIdentities) Insert(ctx context.Context, i *models.Identity) (*models.Identity, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	return f.Repository.Insert(ctx, i)
}

type fakeRepoManager struct {
	*repomanager.MemoryRepositoryManager
	ids *fakeIdentities
}

func newFakeRepoManager() *fakeRepoManager {
	mem := repomanager.NewMemoryRepositoryManager()
	return &fakeRepoManager{
		MemoryRepositoryManager: mem,
		ids:                     &fakeIdentities{Repository: mem.IdentityStore()},
	}
}

func (m *fakeRepoManager) Identities(dbx.DBTX) identities.Repository { return m.ids }
