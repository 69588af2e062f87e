package appointments

import (
	"context"

	"github.com/dmitrijs2005/carebook/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.Appointment) (*models.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Appointment, error)
}
