package exercises

import (
	"context"

	"github.com/dmitrijs2005/carebook/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.Exercise) (*models.Exercise, error)
	GetByID(ctx context.Context, id string) (*models.Exercise, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Exercise, error)
}
