package admin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/carebook/internal/common"
	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/dmitrijs2005/carebook/internal/server/services"
	"github.com/google/uuid"
)

var ErrUnknownCommand = errors.New("unknown command")

// Identities is the part of services.IdentityService the tool drives.
type Identities interface {
	RegisterIdentity(ctx context.Context, in services.RegisterInput, role models.Role) (*models.Identity, error)
	ListProfesionals(ctx context.Context) ([]*models.Identity, error)
	SetProfesionalVerified(ctx context.Context, id string, verified bool) error
}

type App struct {
	identities Identities
	migrate    func(ctx context.Context) error
	reader     *bufio.Reader
	out        io.Writer
}

func NewApp(identities Identities, migrate func(ctx context.Context) error, in io.Reader, out io.Writer) *App {
	return &App{identities: identities, migrate: migrate, reader: bufio.NewReader(in), out: out}
}

const usage = `Usage: admin [flags] <command> [args]

Commands:
  migrate                     apply pending schema migrations
  create-profesional          register a practitioner interactively
  verify-profesional <id>     mark a practitioner as verified
  unverify-profesional <id>   revoke a practitioner's verification
  list-profesionals           list practitioners
`

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	case "migrate":
		return a.runMigrate(ctx)
	case "create-profesional":
		return a.createProfesional(ctx)
	case "verify-profesional":
		return a.setVerified(ctx, rest, true)
	case "unverify-profesional":
		return a.setVerified(ctx, rest, false)
	case "list-profesionals":
		return a.listProfesionals(ctx)
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

func (a *App) runMigrate(ctx context.Context) error {
	if err := a.migrate(ctx); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	fmt.Fprintln(a.out, "Migrations applied")
	return nil
}

func (a *App) createProfesional(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	lastName, err := GetSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	verified, err := GetConfirmation(a.reader, "Mark as verified?", a.out)
	if err != nil {
		return err
	}

	identity, err := a.identities.RegisterIdentity(ctx, services.RegisterInput{
		Name:       name,
		LastName:   lastName,
		Email:      email,
		Password:   password,
		IsVerified: verified,
	}, models.RoleProfesional)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created profesional %s (%s)\n", identity.ID, identity.Email)
	return nil
}

func (a *App) setVerified(ctx context.Context, args []string, verified bool) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected exactly one practitioner id", common.ErrValidation)
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid id", common.ErrValidation, args[0])
	}

	if err := a.identities.SetProfesionalVerified(ctx, id.String(), verified); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("profesional %s: %w", id, err)
		}
		return err
	}

	state := "verified"
	if !verified {
		state = "unverified"
	}
	fmt.Fprintf(a.out, "Profesional %s is now %s\n", id, state)
	return nil
}

func (a *App) listProfesionals(ctx context.Context) error {
	list, err := a.identities.ListProfesionals(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No profesionals registered")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tVERIFIED")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%t\n", p.ID, p.Email, p.Name, p.LastName, p.IsVerified)
	}
	return tw.Flush()
}
