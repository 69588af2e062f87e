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

type BookInput struct {
	DayDate       string
	Schedule      string
	Via           string
	ProfesionalID string
}

// AppointmentService books patients with practitioners. Overlapping
// bookings are accepted as is.
type AppointmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewAppointmentService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *AppointmentService {
	return &AppointmentService{db: db, repomanager: m, log: log.With("module", "appointments")}
}

// Book stores an appointment for userID. Both sides must exist with the
// expected role, otherwise common.ErrorNotFound.
func (s *AppointmentService) Book(ctx context.Context, userID string, in BookInput) (*models.Appointment, error) {
	if strings.TrimSpace(in.DayDate) == "" || strings.TrimSpace(in.Schedule) == "" || in.ProfesionalID == "" {
		return nil, validationError("date, schedule and profesional_id are required")
	}
	if err := requireID("profesional_id", in.ProfesionalID); err != nil {
		return nil, err
	}

	var created *models.Appointment
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		people := s.repomanager.Identities(tx)
		if _, err := requireRole(ctx, people, userID, models.RoleUser); err != nil {
			return err
		}
		if _, err := requireRole(ctx, people, in.ProfesionalID, models.RoleProfesional); err != nil {
			return err
		}

		var err error
		created, err = s.repomanager.Appointments(tx).Create(ctx, &models.Appointment{
			DayDate:       in.DayDate,
			Schedule:      in.Schedule,
			Via:           in.Via,
			UserID:        userID,
			ProfesionalID: in.ProfesionalID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "appointment booked", "id", created.ID, "user_id", userID, "profesional_id", in.ProfesionalID)
	return created, nil
}

func (s *AppointmentService) ListForUser(ctx context.Context, userID string) ([]*models.Appointment, error) {
	return s.repomanager.Appointments(s.db).ListByUser(ctx, userID)
}
