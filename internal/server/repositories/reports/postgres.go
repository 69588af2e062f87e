package reports

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/carebook/internal/common"
	"github.com/dmitrijs2005/carebook/internal/dbx"
	"github.com/dmitrijs2005/carebook/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the report. A missing patient, practitioner or exercise
// surfaces as common.ErrorNotFound.
func (r *PostgresRepository) Create(ctx context.Context, rep *models.Report) (*models.Report, error) {
	query :=
		`INSERT INTO report (diagnostic, progress, finished, bitacora, exercise_id, user_id, profesional_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		rep.Diagnostic, rep.Progress, rep.Finished, rep.Bitacora, rep.ExerciseID, rep.UserID, rep.ProfesionalID,
	).Scan(&rep.ID, &rep.CreatedAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rep, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Report, error) {
	query :=
		`SELECT id, diagnostic, progress, finished, bitacora, exercise_id, user_id, profesional_id, created_at
		 FROM report WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Report, 0)
	for rows.Next() {
		rep := &models.Report{}
		err := rows.Scan(&rep.ID, &rep.Diagnostic, &rep.Progress, &rep.Finished, &rep.Bitacora,
			&rep.ExerciseID, &rep.UserID, &rep.ProfesionalID, &rep.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
