package identities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/carebook/internal/common"
	"github.com/dmitrijs2005/carebook/internal/dbx"
	"github.com/dmitrijs2005/carebook/internal/server/models"
)

// emailConstraint is the unique constraint on person.email.
const emailConstraint = "person_email_key"

const selectColumns = `id, name, last_name, email, type, salt, password_hash, is_verified, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, identity *models.Identity) (*models.Identity, error) {
	query :=
		`INSERT INTO person (name, last_name, email, type, salt, password_hash, is_verified)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		identity.Name, identity.LastName, identity.Email, string(identity.Role),
		identity.Salt, identity.PasswordHash, identity.IsVerified,
	).Scan(&identity.ID, &identity.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err, emailConstraint) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return identity, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	query := `SELECT ` + selectColumns + ` FROM person WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Identity, error) {
	query := `SELECT ` + selectColumns + ` FROM person WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.Identity, error) {
	query := `SELECT ` + selectColumns + ` FROM person WHERE type = $1 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, string(role))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Identity, 0)
	for rows.Next() {
		identity, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, identity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	query := `UPDATE person SET is_verified = $2 WHERE id = $1 AND type = 'profesional'`

	res, err := r.db.ExecContext(ctx, query, id, verified)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Identity, error) {
	identity := &models.Identity{}
	var role string
	err := s.Scan(
		&identity.ID, &identity.Name, &identity.LastName, &identity.Email, &role,
		&identity.Salt, &identity.PasswordHash, &identity.IsVerified, &identity.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	identity.Role = models.Role(role)
	return identity, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Identity, error) {
	identity, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return identity, nil
}
