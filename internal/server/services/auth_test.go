package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/charbel291291291/election2026/internal/common"
	"github.com/charbel291291291/election2026/internal/logging"
	"github.com/charbel291291291/election2026/internal/server/auth"
	"github.com/charbel291291291/election2026/internal/server/config"
	"github.com/charbel291291291/election2026/internal/server/models"
	"github.com/charbel291291291/election2026/internal/server/repositories/agents"
	"github.com/charbel291291291/election2026/internal/server/repositories/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

// captureLogger buffers log output so tests can assert on emitted lines.
func captureLogger() (logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil))), &buf
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	return cfg
}

func mustHash(t *testing.T, pin string) []byte {
	t.Helper()
	h, err := auth.HashPIN(pin)
	require.NoError(t, err)
	return h
}

func seedAgent(t *testing.T, repo agents.Repository, a models.Agent) *models.Agent {
	t.Helper()
	created, err := repo.Create(context.Background(), &a)
	require.NoError(t, err)
	return created
}

func setupAuth(t *testing.T) (*AuthService, agents.Repository, *audit.InMemoryRepository) {
	t.Helper()
	agentRepo := agents.NewInMemoryRepository()
	auditRepo := audit.NewInMemoryRepository()
	return NewAuthService(agentRepo, auditRepo, testConfig(), discardLogger()), agentRepo, auditRepo
}

func TestLogin_Success(t *testing.T) {
	svc, repo, auditRepo := setupAuth(t)
	ctx := context.Background()

	seedAgent(t, repo, models.Agent{
		ID:             "agent-1",
		OrganizationID: "org-1",
		PhoneNumber:    "+96170000001",
		PINHash:        mustHash(t, "4821"),
	})

	token, agent, err := svc.Login(ctx, "+96170000001", "4821", "203.0.113.7")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "agent-1", agent.ID)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "agent-1", claims.UserID)
	assert.False(t, claims.Root)

	entries, err := auditRepo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "LOGIN", entries[0].Action)
	assert.Equal(t, "203.0.113.7", entries[0].OriginAddr)
}

// Unknown phone and wrong PIN must be indistinguishable to the caller.
func TestLogin_UniformFailure(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	ctx := context.Background()

	seedAgent(t, repo, models.Agent{
		ID:          "agent-1",
		PhoneNumber: "+96170000001",
		PINHash:     mustHash(t, "4821"),
	})

	_, _, errWrongPIN := svc.Login(ctx, "+96170000001", "0000", "")
	_, _, errNoPhone := svc.Login(ctx, "+96170099999", "4821", "")

	require.ErrorIs(t, errWrongPIN, common.ErrUnauthorized)
	require.ErrorIs(t, errNoPhone, common.ErrUnauthorized)
	assert.Equal(t, errWrongPIN.Error(), errNoPhone.Error())
}

func TestLogin_BannedAgent(t *testing.T) {
	svc, repo, _ := setupAuth(t)

	seedAgent(t, repo, models.Agent{
		ID:          "agent-1",
		PhoneNumber: "+96170000001",
		PINHash:     mustHash(t, "4821"),
		Banned:      true,
	})

	_, _, err := svc.Login(context.Background(), "+96170000001", "4821", "")
	require.ErrorIs(t, err, common.ErrAgentBanned)
}

func TestEscalateRoot_GrantsTimeBoxedClaim(t *testing.T) {
	svc, repo, auditRepo := setupAuth(t)
	ctx := context.Background()

	admin := seedAgent(t, repo, models.Agent{
		ID:          "admin-1",
		PhoneNumber: "+96170000009",
		PINHash:     mustHash(t, "4821"),
		RootPINHash: mustHash(t, "9999"),
		IsRootAdmin: true,
	})

	token, err := svc.EscalateRoot(ctx, admin, "9999", "203.0.113.7")
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	require.True(t, claims.Root)
	assert.True(t, claims.HasActiveRoot(time.Now()))
	assert.False(t, claims.HasActiveRoot(time.Now().Add(21*time.Minute)))

	entries, err := auditRepo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ROOT_GRANTED", entries[0].Action)
}

func TestEscalateRoot_WrongPIN(t *testing.T) {
	svc, repo, auditRepo := setupAuth(t)
	ctx := context.Background()

	admin := seedAgent(t, repo, models.Agent{
		ID:          "admin-1",
		PINHash:     mustHash(t, "4821"),
		RootPINHash: mustHash(t, "9999"),
		IsRootAdmin: true,
	})

	_, err := svc.EscalateRoot(ctx, admin, "0000", "")
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)

	entries, err := auditRepo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ROOT_DENIED", entries[0].Action)
}

func TestEscalateRoot_NonAdminDenied(t *testing.T) {
	svc, repo, _ := setupAuth(t)

	agent := seedAgent(t, repo, models.Agent{
		ID:      "agent-1",
		PINHash: mustHash(t, "4821"),
	})

	_, err := svc.EscalateRoot(context.Background(), agent, "9999", "")
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)
}

// failingAuditRepo simulates a broken audit store.
type failingAuditRepo struct{}

func (failingAuditRepo) Append(ctx context.Context, entry *models.AuditEntry) error {
	return errors.New("audit insert failed")
}

func (failingAuditRepo) List(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	return nil, nil
}

func TestLogin_AuditFailureIsLoggedNotFatal(t *testing.T) {
	agentRepo := agents.NewInMemoryRepository()
	logger, buf := captureLogger()
	svc := NewAuthService(agentRepo, failingAuditRepo{}, testConfig(), logger)

	seedAgent(t, agentRepo, models.Agent{
		ID:          "agent-1",
		PhoneNumber: "+96170000001",
		PINHash:     mustHash(t, "4821"),
	})

	token, _, err := svc.Login(context.Background(), "+96170000001", "4821", "203.0.113.7")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Contains(t, buf.String(), "audit append failed")
	assert.Contains(t, buf.String(), "LOGIN")
}
