package admin

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/carebook/internal/common"
	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/dmitrijs2005/carebook/internal/server/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentities struct {
	registered  []services.RegisterInput
	roles       []models.Role
	registerErr error

	list    []*models.Identity
	listErr error

	verifyCalls map[string]bool
	verifyErr   error
}

func (f *fakeIdentities) RegisterIdentity(_ context.Context, in services.RegisterInput, role models.Role) (*models.Identity, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registered = append(f.registered, in)
	f.roles = append(f.roles, role)
	return &models.Identity{ID: "p-1", Email: in.Email, Role: role, IsVerified: in.IsVerified}, nil
}

func (f *fakeIdentities) ListProfesionals(context.Context) ([]*models.Identity, error) {
	return f.list, f.listErr
}

func (f *fakeIdentities) SetProfesionalVerified(_ context.Context, id string, verified bool) error {
	if f.verifyErr != nil {
		return f.verifyErr
	}
	if f.verifyCalls == nil {
		f.verifyCalls = make(map[string]bool)
	}
	f.verifyCalls[id] = verified
	return nil
}

func newTestApp(ids *fakeIdentities, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	app := NewApp(ids, func(context.Context) error { return nil }, strings.NewReader(input), &out)
	return app, &out
}

func TestRun_Usage(t *testing.T) {
	app, out := newTestApp(&fakeIdentities{}, "")
	require.NoError(t, app.Run(context.Background(), nil))
	assert.Contains(t, out.String(), "verify-profesional <id>")

	err := app.Run(context.Background(), []string{"frobnicate"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRun_Migrate(t *testing.T) {
	var calls int
	var out bytes.Buffer
	app := NewApp(&fakeIdentities{}, func(context.Context) error { calls++; return nil }, strings.NewReader(""), &out)

	require.NoError(t, app.Run(context.Background(), []string{"migrate"}))
	assert.Equal(t, 1, calls)
	assert.Contains(t, out.String(), "Migrations applied")

	failing := NewApp(&fakeIdentities{}, func(context.Context) error { return errors.New("boom") }, strings.NewReader(""), &out)
	err := failing.Run(context.Background(), []string{"migrate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRun_CreateProfesional(t *testing.T) {
	stubTerminal(t, true, func(int) ([]byte, error) { return []byte("secret"), nil })

	ids := &fakeIdentities{}
	app, out := newTestApp(ids, "Pablo\nRuiz\np@x.com\ny\n")

	require.NoError(t, app.Run(context.Background(), []string{"create-profesional"}))
	require.Len(t, ids.registered, 1)
	got := ids.registered[0]
	assert.Equal(t, services.RegisterInput{Name: "Pablo", LastName: "Ruiz", Email: "p@x.com", Password: "secret", IsVerified: true}, got)
	assert.Equal(t, models.RoleProfesional, ids.roles[0])
	assert.Contains(t, out.String(), "Created profesional p-1 (p@x.com)")
	assert.NotContains(t, out.String(), "secret")
}

func TestRun_CreateProfesional_PipedStdin(t *testing.T) {
	stubTerminal(t, false, nil)

	ids := &fakeIdentities{}
	app, _ := newTestApp(ids, "Pablo\nRuiz\np@x.com\nsecret\nn\n")

	require.NoError(t, app.Run(context.Background(), []string{"create-profesional"}))
	require.Len(t, ids.registered, 1)
	assert.Equal(t, services.RegisterInput{Name: "Pablo", LastName: "Ruiz", Email: "p@x.com", Password: "secret"}, ids.registered[0])
}

func TestRun_CreateProfesional_Duplicate(t *testing.T) {
	stubTerminal(t, true, func(int) ([]byte, error) { return []byte("secret"), nil })

	app, _ := newTestApp(&fakeIdentities{registerErr: common.ErrDuplicateEmail}, "P\nR\np@x.com\nn\n")
	err := app.Run(context.Background(), []string{"create-profesional"})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestRun_VerifyAndUnverify(t *testing.T) {
	ids := &fakeIdentities{}
	app, out := newTestApp(ids, "")
	id := uuid.NewString()

	require.NoError(t, app.Run(context.Background(), []string{"verify-profesional", id}))
	assert.True(t, ids.verifyCalls[id])
	assert.Contains(t, out.String(), "is now verified")

	require.NoError(t, app.Run(context.Background(), []string{"unverify-profesional", id}))
	assert.False(t, ids.verifyCalls[id])
	assert.Contains(t, out.String(), "is now unverified")
}

func TestRun_VerifyErrors(t *testing.T) {
	app, _ := newTestApp(&fakeIdentities{}, "")

	assert.ErrorIs(t, app.Run(context.Background(), []string{"verify-profesional"}), common.ErrValidation)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"verify-profesional", "nope"}), common.ErrValidation)

	missing, _ := newTestApp(&fakeIdentities{verifyErr: common.ErrorNotFound}, "")
	assert.ErrorIs(t, missing.Run(context.Background(), []string{"verify-profesional", uuid.NewString()}), common.ErrorNotFound)
}

func TestRun_ListProfesionals(t *testing.T) {
	ids := &fakeIdentities{list: []*models.Identity{
		{ID: "p-1", Email: "p@x.com", Name: "Pablo", LastName: "Ruiz", IsVerified: true},
		{ID: "p-2", Email: "m@x.com", Name: "Marta", LastName: "Gil"},
	}}
	app, out := newTestApp(ids, "")

	require.NoError(t, app.Run(context.Background(), []string{"list-profesionals"}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "VERIFIED")
	assert.Contains(t, lines[1], "p@x.com")
	assert.Contains(t, lines[1], "true")
	assert.Contains(t, lines[2], "false")

	empty, emptyOut := newTestApp(&fakeIdentities{}, "")
	require.NoError(t, empty.Run(context.Background(), []string{"list-profesionals"}))
	assert.Contains(t, emptyOut.String(), "No profesionals registered")
}
