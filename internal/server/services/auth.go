// Package services implements the backend application services: PIN
// authentication, report intake and privileged administration.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/charbel291291291/election2026/internal/common"
	"github.com/charbel291291291/election2026/internal/logging"
	"github.com/charbel291291291/election2026/internal/server/auth"
	"github.com/charbel291291291/election2026/internal/server/config"
	"github.com/charbel291291291/election2026/internal/server/models"
	"github.com/charbel291291291/election2026/internal/server/repositories/agents"
	"github.com/charbel291291291/election2026/internal/server/repositories/audit"
)

// appendAudit writes one audit entry. The triggering operation is never
// rolled back over a failed trail write; the failure is reported in the log
// instead of being swallowed.
func appendAudit(ctx context.Context, repo audit.Repository, logger logging.Logger, entry *models.AuditEntry) {
	if err := repo.Append(ctx, entry); err != nil {
		logger.Error(ctx, "audit append failed",
			"action", entry.Action, "actor", entry.ActorID, "error", err.Error())
	}
}

type AuthService struct {
	agents    agents.Repository
	audit     audit.Repository
	logger    logging.Logger
	jwtSecret []byte

	accessTokenValidity time.Duration
	rootValidity        time.Duration
}

func NewAuthService(agentRepo agents.Repository, auditRepo audit.Repository, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		agents:              agentRepo,
		audit:               auditRepo,
		logger:              logger,
		jwtSecret:           []byte(cfg.SecretKey),
		accessTokenValidity: cfg.AccessTokenValidity,
		rootValidity:        cfg.RootSessionValidity,
	}
}

// Login authenticates an agent by phone number and PIN. Unknown phone and
// wrong PIN produce the same error, and the unknown-phone path still burns
// a bcrypt comparison so response timing does not leak which one it was.
func (s *AuthService) Login(ctx context.Context, phone, pin, origin string) (string, *models.Agent, error) {
	agent, err := s.agents.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			auth.EqualizeCompare(pin)
			return "", nil, common.ErrUnauthorized
		}
		return "", nil, common.ErrInternal
	}

	if !auth.CheckPIN(agent.PINHash, pin) {
		return "", nil, common.ErrUnauthorized
	}

	if agent.Banned {
		return "", nil, common.ErrAgentBanned
	}

	token, err := auth.GenerateToken(agent.ID, s.jwtSecret, s.accessTokenValidity)
	if err != nil {
		return "", nil, common.ErrInternal
	}

	appendAudit(ctx, s.audit, s.logger, &models.AuditEntry{
		ActorID:    agent.ID,
		Action:     "LOGIN",
		OriginAddr: origin,
	})

	return token, agent, nil
}

// GetAgent loads an agent by id for request authentication.
func (s *AuthService) GetAgent(ctx context.Context, id string) (*models.Agent, error) {
	agent, err := s.agents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}
	return agent, nil
}

// ParseToken validates a presented session token.
func (s *AuthService) ParseToken(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.jwtSecret)
}

// EscalateRoot verifies the caller's root PIN and, on success, issues a
// refreshed session token embedding a root grant with an absolute expiry.
// The caller's identity always comes from the already-authenticated
// session, never from the request body. Both grant and denial are audited.
func (s *AuthService) EscalateRoot(ctx context.Context, agent *models.Agent, pin, origin string) (string, error) {
	denied := func() (string, error) {
		appendAudit(ctx, s.audit, s.logger, &models.AuditEntry{
			ActorID:    agent.ID,
			Action:     "ROOT_DENIED",
			OriginAddr: origin,
		})
		return "", common.ErrAuthorizationDenied
	}

	if !agent.IsRootAdmin || agent.Banned || len(agent.RootPINHash) == 0 {
		auth.EqualizeCompare(pin)
		return denied()
	}

	if !auth.CheckPIN(agent.RootPINHash, pin) {
		return denied()
	}

	token, err := auth.GenerateRootToken(agent.ID, s.jwtSecret, s.accessTokenValidity, s.rootValidity)
	if err != nil {
		return "", common.ErrInternal
	}

	appendAudit(ctx, s.audit, s.logger, &models.AuditEntry{
		ActorID:    agent.ID,
		Action:     "ROOT_GRANTED",
		OriginAddr: origin,
	})

	return token, nil
}
