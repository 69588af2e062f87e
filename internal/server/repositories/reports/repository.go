package reports

import (
	"context"

	"github.com/dmitrijs2005/carebook/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, r *models.Report) (*models.Report, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Report, error)
}
