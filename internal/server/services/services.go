// Package services contains server-side business logic: identity
// registration and authentication, appointments, reports and exercises.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/carebook/internal/common"
	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/dmitrijs2005/carebook/internal/server/repositories/identities"
	"github.com/google/uuid"
)

// TokenIssuer mints an access token whose subject is the identity id.
type TokenIssuer interface {
	Issue(subjectID string) (string, error)
}

// Recorder counts operation outcomes. *metrics.Metrics satisfies it.
type Recorder interface {
	Observe(op, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) Observe(string, string) {}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, msg)
}

// requireID rejects ids that are not uuids before they reach the store.
func requireID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return validationError(field + " must be a uuid")
	}
	return nil
}

// requireRole loads an identity and checks its role. A missing identity and
// one with the wrong role are both reported as common.ErrorNotFound.
func requireRole(ctx context.Context, repo identities.Repository, id string, role models.Role) (*models.Identity, error) {
	identity, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%s %s: %w", role, id, common.ErrorNotFound)
		}
		return nil, err
	}
	if identity.Role != role {
		return nil, fmt.Errorf("%s %s: %w", role, id, common.ErrorNotFound)
	}
	return identity, nil
}
