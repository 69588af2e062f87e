package identities

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/carebook/internal/common"
	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps identities in process memory. The mutex makes the
// email check and the insert one step, so concurrent registrations with the
// same email behave like the database constraint: exactly one wins. Test use
// only: it ignores the transaction it is called within.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.Identity
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.Identity),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepository) Insert(_ context.Context, identity *models.Identity) (*models.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[identity.Email]; taken {
		return nil, common.ErrDuplicateEmail
	}

	identity.ID = uuid.NewString()
	identity.CreatedAt = time.Now().UTC()

	stored := *identity
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID

	return identity, nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*models.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	found := *r.byID[id]
	return &found, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	found := *stored
	return &found, nil
}

func (r *MemoryRepository) ListByRole(_ context.Context, role models.Role) ([]*models.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Identity, 0)
	for _, stored := range r.byID {
		if stored.Role == role {
			found := *stored
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) SetVerified(_ context.Context, id string, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok || stored.Role != models.RoleProfesional {
		return common.ErrorNotFound
	}
	stored.IsVerified = verified
	return nil
}

// Len is the number of stored identities.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
