package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/amirasaad/invest/internal/fixtures"
	"github.com/amirasaad/invest/pkg/domain"
	usersvc "github.com/amirasaad/invest/pkg/service/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCLI(t *testing.T) (*cli, *bytes.Buffer) {
	t.Helper()
	uow, _ := fixtures.NewUoW(t)
	out := &bytes.Buffer{}
	return &cli{
		users:    usersvc.NewUserService(uow, slog.Default()),
		out:      out,
		password: func() (string, error) { return "Sup3rSecret!", nil },
	}, out
}

func TestCreateAdminThenDemote(t *testing.T) {
	c, out := newCLI(t)
	ctx := context.Background()

	require.NoError(t, c.run(ctx, []string{"create-admin", "ops@example.com", "Ops", "Team"}))
	assert.Contains(t, out.String(), "Admin created: ops@example.com")

	require.ErrorIs(t, c.run(ctx, []string{"create-admin", "ops@example.com", "Ops", "Team"}), domain.ErrAlreadyExists)

	require.NoError(t, c.run(ctx, []string{"demote", "ops@example.com"}))
	assert.Contains(t, out.String(), "ops@example.com is now "+string(domain.RoleUser))
}

func TestPromoteUnknown(t *testing.T) {
	c, _ := newCLI(t)
	assert.ErrorIs(t, c.run(context.Background(), []string{"promote", "ghost@example.com"}), domain.ErrNotFound)
}

func TestPendingAndUsage(t *testing.T) {
	c, out := newCLI(t)
	require.NoError(t, c.run(context.Background(), []string{"pending"}))
	assert.Contains(t, out.String(), "Review queues")

	assert.Error(t, c.run(context.Background(), []string{"promote"}))
	assert.Error(t, c.run(context.Background(), []string{"bogus"}))
}
