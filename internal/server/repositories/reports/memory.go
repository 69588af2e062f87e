package reports

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository is the in-process store used by tests. It ignores the
// transaction it is called within.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.Report
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, rep *models.Report) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep.ID = uuid.NewString()
	rep.CreatedAt = time.Now().UTC()
	r.items = append(r.items, *rep)
	return rep, nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]*models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Report, 0)
	for i := range r.items {
		if r.items[i].UserID == userID {
			rep := r.items[i]
			result = append(result, &rep)
		}
	}
	return result, nil
}
