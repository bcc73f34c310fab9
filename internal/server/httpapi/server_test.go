package httpapi

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charbel291291291/election2026/internal/client/api"
	cmodels "github.com/charbel291291291/election2026/internal/client/models"
	"github.com/charbel291291291/election2026/internal/common"
	"github.com/charbel291291291/election2026/internal/logging"
	"github.com/charbel291291291/election2026/internal/server/auth"
	"github.com/charbel291291291/election2026/internal/server/config"
	"github.com/charbel291291291/election2026/internal/server/models"
	"github.com/charbel291291291/election2026/internal/server/repositories/agents"
	"github.com/charbel291291291/election2026/internal/server/repositories/audit"
	"github.com/charbel291291291/election2026/internal/server/repositories/orgs"
	"github.com/charbel291291291/election2026/internal/server/repositories/reports"
	"github.com/charbel291291291/election2026/internal/server/services"
)

// fixture runs the full router against in-memory repositories and talks to
// it through the real agent-side HTTP client, so the wire format is checked
// from both ends at once.
type fixture struct {
	cfg     *config.Config
	agents  *agents.InMemoryRepository
	orgs    *orgs.InMemoryRepository
	reports *reports.InMemoryRepository
	client  *api.HTTPClient
}

func setup(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"

	agentRepo := agents.NewInMemoryRepository()
	orgRepo := orgs.NewInMemoryRepository()
	reportRepo := reports.NewInMemoryRepository()
	auditRepo := audit.NewInMemoryRepository()

	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))

	authSvc := services.NewAuthService(agentRepo, auditRepo, cfg, logger)
	reportSvc := services.NewReportService(reportRepo, cfg)
	adminSvc := services.NewAdminService(agentRepo, orgRepo, auditRepo, logger)

	srv := NewServer(cfg.EndpointAddr, logger, authSvc, reportSvc, adminSvc)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return &fixture{
		cfg:     cfg,
		agents:  agentRepo,
		orgs:    orgRepo,
		reports: reportRepo,
		client:  api.NewHTTPClient(ts.URL),
	}
}

func (f *fixture) seedOrg(t *testing.T, id string) *models.Organization {
	t.Helper()
	org, err := f.orgs.Create(context.Background(), &models.Organization{
		ID:               id,
		Name:             "Beirut District Office",
		SubscriptionPlan: "basic",
		MaxUsers:         10,
		Active:           true,
	})
	require.NoError(t, err)
	return org
}

func (f *fixture) seedAgent(t *testing.T, a models.Agent, pin, rootPIN string) *models.Agent {
	t.Helper()

	h, err := auth.HashPIN(pin)
	require.NoError(t, err)
	a.PINHash = h

	if rootPIN != "" {
		rh, err := auth.HashPIN(rootPIN)
		require.NoError(t, err)
		a.RootPINHash = rh
	}

	created, err := f.agents.Create(context.Background(), &a)
	require.NoError(t, err)
	return created
}

func sampleReport() *cmodels.FieldReport {
	return cmodels.NewFieldReport("", "", cmodels.CategoryVoteCount, "box 12 counted", "", 412, 33.89, 35.50)
}

func TestPing(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.client.Ping(context.Background()))
}

func TestLogin_ReturnsSessionProfile(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.seedOrg(t, "org-1")
	f.seedAgent(t, models.Agent{
		ID:             "agent-1",
		OrganizationID: "org-1",
		FullName:       "Rana Khoury",
		PhoneNumber:    "+96170000001",
		Role:           "field_agent",
	}, "4821", "")

	session, err := f.client.Login(ctx, "+96170000001", "4821")
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "agent-1", session.Profile.ID)
	assert.Equal(t, "org-1", session.Profile.OrganizationID)
	assert.Equal(t, "Rana Khoury", session.Profile.FullName)
	assert.False(t, session.Profile.RootAdmin)
	assert.Equal(t, session.Token, f.client.Token())
}

func TestLogin_WrongPIN(t *testing.T) {
	f := setup(t)

	f.seedAgent(t, models.Agent{ID: "agent-1", PhoneNumber: "+96170000001"}, "4821", "")

	_, err := f.client.Login(context.Background(), "+96170000001", "0000")
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestSubmitReport_RoundTrip(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.seedOrg(t, "org-1")
	f.seedAgent(t, models.Agent{ID: "agent-1", OrganizationID: "org-1", PhoneNumber: "+96170000001"}, "4821", "")

	_, err := f.client.Login(ctx, "+96170000001", "4821")
	require.NoError(t, err)

	report := sampleReport()
	// Ownership fields are assigned server-side; whatever the client sends
	// must be overwritten with the authenticated agent's identity.
	report.OrganizationID = "org-other"
	report.AuthorID = "someone-else"

	require.NoError(t, f.client.SubmitReport(ctx, report))

	listed, err := f.client.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, report.ID, listed[0].ID)
	assert.Equal(t, "org-1", listed[0].OrganizationID)
	assert.Equal(t, "agent-1", listed[0].AuthorID)
	assert.Equal(t, cmodels.StatusPending, listed[0].Status)
}

func TestSubmitReport_Idempotent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.seedOrg(t, "org-1")
	f.seedAgent(t, models.Agent{ID: "agent-1", OrganizationID: "org-1", PhoneNumber: "+96170000001"}, "4821", "")

	_, err := f.client.Login(ctx, "+96170000001", "4821")
	require.NoError(t, err)

	report := sampleReport()
	require.NoError(t, f.client.SubmitReport(ctx, report))
	report.Notes = "box 12 counted (Synced)"
	require.NoError(t, f.client.SubmitReport(ctx, report))

	require.Equal(t, 1, f.reports.Count())
	listed, err := f.client.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "box 12 counted (Synced)", listed[0].Notes)
}

func TestSubmitReport_UnknownCategoryRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.seedAgent(t, models.Agent{ID: "agent-1", OrganizationID: "org-1", PhoneNumber: "+96170000001"}, "4821", "")

	_, err := f.client.Login(ctx, "+96170000001", "4821")
	require.NoError(t, err)

	report := sampleReport()
	report.Category = "rumor"

	err = f.client.SubmitReport(ctx, report)
	require.ErrorIs(t, err, common.ErrRemoteRejected)
}

func TestListReports_ScopedToOrganization(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.seedAgent(t, models.Agent{ID: "agent-1", OrganizationID: "org-1", PhoneNumber: "+96170000001"}, "4821", "")
	f.seedAgent(t, models.Agent{ID: "agent-2", OrganizationID: "org-2", PhoneNumber: "+96170000002"}, "7777", "")

	_, err := f.client.Login(ctx, "+96170000001", "4821")
	require.NoError(t, err)
	require.NoError(t, f.client.SubmitReport(ctx, sampleReport()))

	_, err = f.client.Login(ctx, "+96170000002", "7777")
	require.NoError(t, err)

	listed, err := f.client.ListReports(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestEscalateRoot_GrantsPrivilegedAccess(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	org := f.seedOrg(t, "org-1")
	f.seedAgent(t, models.Agent{
		ID:             "admin-1",
		OrganizationID: "org-1",
		PhoneNumber:    "+96170000009",
		IsRootAdmin:    true,
	}, "4821", "9999")

	session, err := f.client.Login(ctx, "+96170000009", "4821")
	require.NoError(t, err)

	require.NoError(t, f.client.EscalateRoot(ctx, "9999"))
	assert.NotEqual(t, session.Token, f.client.Token())

	_, err = f.client.InvokeRootAction(ctx, services.ActionSuspendOrg, map[string]any{"org_id": org.ID})
	require.NoError(t, err)

	got, err := f.orgs.GetByID(ctx, org.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestEscalateRoot_WrongPINDenied(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.seedAgent(t, models.Agent{ID: "admin-1", PhoneNumber: "+96170000009", IsRootAdmin: true}, "4821", "9999")

	_, err := f.client.Login(ctx, "+96170000009", "4821")
	require.NoError(t, err)

	err = f.client.EscalateRoot(ctx, "0000")
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)
}

func TestEscalateRoot_NonAdminDenied(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.seedAgent(t, models.Agent{ID: "agent-1", PhoneNumber: "+96170000001"}, "4821", "")

	_, err := f.client.Login(ctx, "+96170000001", "4821")
	require.NoError(t, err)

	err = f.client.EscalateRoot(ctx, "9999")
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)
}

func TestRootAction_WithoutGrantDenied(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	org := f.seedOrg(t, "org-1")
	f.seedAgent(t, models.Agent{ID: "admin-1", PhoneNumber: "+96170000009", IsRootAdmin: true}, "4821", "9999")

	_, err := f.client.Login(ctx, "+96170000009", "4821")
	require.NoError(t, err)

	_, err = f.client.InvokeRootAction(ctx, services.ActionSuspendOrg, map[string]any{"org_id": org.ID})
	require.ErrorIs(t, err, common.ErrAuthorizationDenied)

	got, err := f.orgs.GetByID(ctx, org.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)
}

func TestRootAction_ExpiredGrant(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	org := f.seedOrg(t, "org-1")
	admin := f.seedAgent(t, models.Agent{ID: "admin-1", PhoneNumber: "+96170000009", IsRootAdmin: true}, "4821", "9999")

	// A token whose session is still valid but whose root window has
	// already lapsed. The server must refuse with the expiry code so the
	// agent knows to re-escalate rather than re-login.
	token, err := auth.GenerateRootToken(admin.ID, []byte(f.cfg.SecretKey), time.Hour, -time.Minute)
	require.NoError(t, err)
	f.client.SetToken(token)

	_, err = f.client.InvokeRootAction(ctx, services.ActionSuspendOrg, map[string]any{"org_id": org.ID})
	require.ErrorIs(t, err, common.ErrAuthorizationExpired)
}

func TestBannedAgent_TokenStopsWorking(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	agent := f.seedAgent(t, models.Agent{ID: "agent-1", OrganizationID: "org-1", PhoneNumber: "+96170000001"}, "4821", "")

	_, err := f.client.Login(ctx, "+96170000001", "4821")
	require.NoError(t, err)

	require.NoError(t, f.agents.SetBanned(ctx, agent.ID, true))

	_, err = f.client.ListReports(ctx)
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestMaintenanceMode_BlocksReportsKeepsRootReachable(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.seedOrg(t, "org-1")
	f.seedAgent(t, models.Agent{
		ID:             "admin-1",
		OrganizationID: "org-1",
		PhoneNumber:    "+96170000009",
		IsRootAdmin:    true,
	}, "4821", "9999")

	_, err := f.client.Login(ctx, "+96170000009", "4821")
	require.NoError(t, err)
	require.NoError(t, f.client.EscalateRoot(ctx, "9999"))

	_, err = f.client.InvokeRootAction(ctx, services.ActionMaintenanceMode, map[string]any{"enabled": true})
	require.NoError(t, err)

	// Report traffic answers 503, which agents treat as a transient outage.
	err = f.client.SubmitReport(ctx, sampleReport())
	require.ErrorIs(t, err, common.ErrNetworkUnavailable)

	// The privileged surface stays up so maintenance can be switched off.
	_, err = f.client.InvokeRootAction(ctx, services.ActionMaintenanceMode, map[string]any{"enabled": false})
	require.NoError(t, err)

	require.NoError(t, f.client.SubmitReport(ctx, sampleReport()))
}
