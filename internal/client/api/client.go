// Package api is the agent's view of the campaign backend. The backend is an
// external collaborator: everything behind these methods is opaque to the
// client, which only relies on submit-by-id being an upsert.
package api

import (
	"context"
	"encoding/json"

	"github.com/charbel291291291/election2026/internal/client/models"
)

// Profile is the authenticated agent as the server describes it.
type Profile struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	PhoneNumber    string `json:"phone_number"`
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id"`
	RootAdmin      bool   `json:"root_admin"`
}

// Session is the result of a successful PIN login.
type Session struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

// PresignGrant authorizes one photo upload to object storage.
type PresignGrant struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Client defines the remote operations the agent performs.
//
// Error contract: transport failures and 5xx responses map to
// common.ErrNetworkUnavailable (retryable), explicit rejections map to
// common.ErrRemoteRejected (terminal), and privileged-path refusals map to
// common.ErrAuthorizationDenied / common.ErrAuthorizationExpired.
type Client interface {
	// Ping checks backend liveness. Used by the connectivity monitor.
	Ping(ctx context.Context) error

	// Login authenticates by phone number and PIN and retains the issued
	// session token for subsequent calls.
	Login(ctx context.Context, phone, pin string) (*Session, error)

	// EscalateRoot verifies the root PIN against the server and swaps the
	// retained session token for one embedding the elevated claim.
	EscalateRoot(ctx context.Context, pin string) error

	// SubmitReport sends one report to the remote store. Idempotent by id.
	SubmitReport(ctx context.Context, report *models.FieldReport) error

	// ListReports returns the live report list for the agent's organization.
	ListReports(ctx context.Context) ([]models.FieldReport, error)

	// PresignPhoto asks the server for a one-shot photo upload grant.
	PresignPhoto(ctx context.Context) (*PresignGrant, error)

	// InvokeRootAction runs a privileged administrative action. The server
	// re-validates the embedded claim before executing, regardless of any
	// client-side state.
	InvokeRootAction(ctx context.Context, action string, payload map[string]any) (json.RawMessage, error)

	Close() error
}
