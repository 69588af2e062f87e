package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/carebook/internal/dbx"
	"github.com/dmitrijs2005/carebook/internal/logging"
	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/dmitrijs2005/carebook/internal/server/repositories/repomanager"
)

type CreateExerciseInput struct {
	Description string
	Status      string
}

type ExerciseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewExerciseService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *ExerciseService {
	return &ExerciseService{db: db, repomanager: m, log: log.With("module", "exercises")}
}

func (s *ExerciseService) Create(ctx context.Context, userID string, in CreateExerciseInput) (*models.Exercise, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, validationError("description is required")
	}

	var created *models.Exercise
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := requireRole(ctx, s.repomanager.Identities(tx), userID, models.RoleUser); err != nil {
			return err
		}
		var err error
		created, err = s.repomanager.Exercises(tx).Create(ctx, &models.Exercise{
			Description: in.Description,
			Status:      in.Status,
			UserID:      userID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "exercise assigned", "id", created.ID, "user_id", userID)
	return created, nil
}

func (s *ExerciseService) ListForUser(ctx context.Context, userID string) ([]*models.Exercise, error) {
	return s.repomanager.Exercises(s.db).ListByUser(ctx, userID)
}
