// Package identities stores patients and practitioners in the single
// person table, discriminated by the type column.
package identities

import (
	"context"

	"github.com/dmitrijs2005/carebook/internal/server/models"
)

// Repository is the identity store. Email uniqueness is enforced here:
// Insert returns common.ErrDuplicateEmail on collision, whatever the role.
type Repository interface {
	Insert(ctx context.Context, identity *models.Identity) (*models.Identity, error)
	FindByEmail(ctx context.Context, email string) (*models.Identity, error)
	GetByID(ctx context.Context, id string) (*models.Identity, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.Identity, error)
	SetVerified(ctx context.Context, id string, verified bool) error
}
