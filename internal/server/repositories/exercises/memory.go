package exercises

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/carebook/internal/common"
	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository is the in-process store used by tests. It ignores the
// transaction it is called within.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.Exercise
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, e *models.Exercise) (*models.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	r.items = append(r.items, *e)
	return e, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.items {
		if r.items[i].ID == id {
			e := r.items[i]
			return &e, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]*models.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Exercise, 0)
	for i := range r.items {
		if r.items[i].UserID == userID {
			e := r.items[i]
			result = append(result, &e)
		}
	}
	return result, nil
}
