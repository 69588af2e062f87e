package appointments

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps appointments in insertion order. Test use only: it
// ignores the transaction it is called within.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.Appointment
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, a *models.Appointment) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = uuid.NewString()
	a.CreatedDate = time.Now().UTC()
	r.items = append(r.items, *a)
	return a, nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Appointment, 0)
	for i := range r.items {
		if r.items[i].UserID == userID {
			a := r.items[i]
			result = append(result, &a)
		}
	}
	return result, nil
}
