package appointments

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

func (r *PostgresRepository) Create(ctx context.Context, a *models.Appointment) (*models.Appointment, error) {
	query :=
		`INSERT INTO appointment (day_date, schedule, via, user_id, profesional_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_date`

	err := r.db.QueryRowContext(ctx, query, a.DayDate, a.Schedule, a.Via, a.UserID, a.ProfesionalID).
		Scan(&a.ID, &a.CreatedDate)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Appointment, error) {
	query :=
		`SELECT id, created_date, day_date, schedule, via, user_id, profesional_id
		 FROM appointment WHERE user_id = $1 ORDER BY created_date, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Appointment, 0)
	for rows.Next() {
		a := &models.Appointment{}
		if err := rows.Scan(&a.ID, &a.CreatedDate, &a.DayDate, &a.Schedule, &a.Via, &a.UserID, &a.ProfesionalID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
