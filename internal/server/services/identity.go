package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/carebook/internal/common"
	"github.com/dmitrijs2005/carebook/internal/dbx"
	"github.com/dmitrijs2005/carebook/internal/logging"
	"github.com/dmitrijs2005/carebook/internal/server/credentials"
	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/dmitrijs2005/carebook/internal/server/repositories/repomanager"
)

// RegisterInput is what a sign-up carries. IsVerified is honored only for
// practitioners.
type RegisterInput struct {
	Name       string
	LastName   string
	Email      string
	Password   string
	IsVerified bool
}

// AuthResult is a successful login: the identity and its access token.
type AuthResult struct {
	Identity *models.Identity
	Token    string
}

// IdentityService registers and authenticates patients and practitioners.
type IdentityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *credentials.Hasher
	issuer      TokenIssuer
	log         logging.Logger
	recorder    Recorder
}

// NewIdentityService wires the service. A nil recorder disables counting.
func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, hasher *credentials.Hasher,
	issuer TokenIssuer, log logging.Logger, recorder Recorder) *IdentityService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &IdentityService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		issuer:      issuer,
		log:         log.With("module", "identity"),
		recorder:    recorder,
	}
}

// RegisterIdentity creates an identity of the given role with a fresh salt.
// A taken email yields common.ErrDuplicateEmail and nothing is stored.
func (s *IdentityService) RegisterIdentity(ctx context.Context, in RegisterInput, role models.Role) (*models.Identity, error) {
	const op = "register"

	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		s.recorder.Observe(op, "invalid")
		return nil, validationError("email and password are required")
	}
	if !role.Valid() {
		s.recorder.Observe(op, "invalid")
		return nil, validationError(fmt.Sprintf("unknown role %q", role))
	}

	salt, err := credentials.GenerateSalt()
	if err != nil {
		s.log.Error(ctx, "salt generation failed", "error", err)
		s.recorder.Observe(op, "error")
		return nil, fmt.Errorf("%w: generating salt: %w", common.ErrorInternal, err)
	}
	hash, err := s.hasher.HashPassword(in.Password, salt)
	if err != nil {
		s.log.Error(ctx, "password hashing failed", "error", err)
		s.recorder.Observe(op, "error")
		return nil, err
	}

	identity := &models.Identity{
		Name:         in.Name,
		LastName:     in.LastName,
		Email:        email,
		Role:         role,
		Salt:         string(salt),
		PasswordHash: string(hash),
		IsVerified:   role == models.RoleProfesional && in.IsVerified,
	}

	var created *models.Identity
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Identities(tx).Insert(ctx, identity)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			s.log.Warn(ctx, "registration rejected, email taken", "email", email, "role", role)
			s.recorder.Observe(op, "duplicate")
			return nil, common.ErrDuplicateEmail
		}
		s.log.Error(ctx, "registration failed", "email", email, "error", err)
		s.recorder.Observe(op, "error")
		return nil, fmt.Errorf("error creating identity: %w", err)
	}

	s.log.Info(ctx, "identity registered", "id", created.ID, "role", role)
	s.recorder.Observe(op, "ok")
	return created, nil
}

// Authenticate checks email and password. Unknown email yields
// common.ErrorNotFound, a wrong password common.ErrInvalidCredentials.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	const op = "authenticate"

	identity, err := s.repomanager.Identities(s.db).FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.log.Info(ctx, "login for unknown email", "email", email)
			s.recorder.Observe(op, "unknown_email")
			return nil, common.ErrorNotFound
		}
		s.log.Error(ctx, "identity lookup failed", "error", err)
		s.recorder.Observe(op, "error")
		return nil, fmt.Errorf("error searching identity: %w", err)
	}

	ok, err := s.hasher.VerifyPassword(password, credentials.Salt(identity.Salt), credentials.PasswordHash(identity.PasswordHash))
	if err != nil {
		s.log.Error(ctx, "password verification failed", "id", identity.ID, "error", err)
		s.recorder.Observe(op, "error")
		return nil, err
	}
	if !ok {
		s.log.Info(ctx, "login with bad credentials", "id", identity.ID)
		s.recorder.Observe(op, "bad_credentials")
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(identity.ID)
	if err != nil {
		s.log.Error(ctx, "token issue failed", "id", identity.ID, "error", err)
		s.recorder.Observe(op, "error")
		return nil, fmt.Errorf("%w: issuing token: %w", common.ErrorInternal, err)
	}

	s.log.Info(ctx, "identity authenticated", "id", identity.ID, "role", identity.Role)
	s.recorder.Observe(op, "ok")
	return &AuthResult{Identity: identity, Token: token}, nil
}

// GetIdentity returns any identity by id.
func (s *IdentityService) GetIdentity(ctx context.Context, id string) (*models.Identity, error) {
	return s.repomanager.Identities(s.db).GetByID(ctx, id)
}

func (s *IdentityService) ListProfesionals(ctx context.Context) ([]*models.Identity, error) {
	return s.repomanager.Identities(s.db).ListByRole(ctx, models.RoleProfesional)
}

// GetProfesional returns common.ErrorNotFound when id is unknown or is not
// a practitioner.
func (s *IdentityService) GetProfesional(ctx context.Context, id string) (*models.Identity, error) {
	return requireRole(ctx, s.repomanager.Identities(s.db), id, models.RoleProfesional)
}

func (s *IdentityService) SetProfesionalVerified(ctx context.Context, id string, verified bool) error {
	if err := s.repomanager.Identities(s.db).SetVerified(ctx, id, verified); err != nil {
		return err
	}
	s.log.Info(ctx, "profesional verification changed", "id", id, "verified", verified)
	return nil
}
