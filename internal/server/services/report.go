package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/carebook/internal/dbx"
	"github.com/dmitrijs2005/carebook/internal/logging"
	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/dmitrijs2005/carebook/internal/server/reportpdf"
	"github.com/dmitrijs2005/carebook/internal/server/repositories/repomanager"
)

type FileReportInput struct {
	Diagnostic string
	Progress   string
	Finished   string
	Bitacora   string
	ExerciseID *string
	UserID     string
}

type ReportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewReportService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *ReportService {
	return &ReportService{db: db, repomanager: m, log: log.With("module", "reports")}
}

// File stores a report written by profesionalID about in.UserID. The
// referenced exercise, when given, must exist.
func (s *ReportService) File(ctx context.Context, profesionalID string, in FileReportInput) (*models.Report, error) {
	if strings.TrimSpace(in.Diagnostic) == "" || in.UserID == "" {
		return nil, validationError("diagnostic and user_id are required")
	}
	if in.ExerciseID != nil && *in.ExerciseID == "" {
		in.ExerciseID = nil
	}
	if err := requireID("user_id", in.UserID); err != nil {
		return nil, err
	}
	if in.ExerciseID != nil {
		if err := requireID("exercise_id", *in.ExerciseID); err != nil {
			return nil, err
		}
	}

	var created *models.Report
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		people := s.repomanager.Identities(tx)
		if _, err := requireRole(ctx, people, profesionalID, models.RoleProfesional); err != nil {
			return err
		}
		if _, err := requireRole(ctx, people, in.UserID, models.RoleUser); err != nil {
			return err
		}
		if in.ExerciseID != nil {
			if _, err := s.repomanager.Exercises(tx).GetByID(ctx, *in.ExerciseID); err != nil {
				return err
			}
		}

		var err error
		created, err = s.repomanager.Reports(tx).Create(ctx, &models.Report{
			Diagnostic:    in.Diagnostic,
			Progress:      in.Progress,
			Finished:      in.Finished,
			Bitacora:      in.Bitacora,
			ExerciseID:    in.ExerciseID,
			UserID:        in.UserID,
			ProfesionalID: profesionalID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "report filed", "id", created.ID, "user_id", in.UserID, "profesional_id", profesionalID)
	return created, nil
}

func (s *ReportService) ListForUser(ctx context.Context, userID string) ([]*models.Report, error) {
	return s.repomanager.Reports(s.db).ListByUser(ctx, userID)
}

// RenderPDF builds the PDF of every report filed about userID.
func (s *ReportService) RenderPDF(ctx context.Context, userID string) ([]byte, error) {
	patient, err := requireRole(ctx, s.repomanager.Identities(s.db), userID, models.RoleUser)
	if err != nil {
		return nil, err
	}
	reports, err := s.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return reportpdf.Build(patient.Public(), reports)
}
