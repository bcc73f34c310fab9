package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charbel291291291/election2026/internal/common"
	"github.com/charbel291291291/election2026/internal/logging"
	"github.com/charbel291291291/election2026/internal/server/auth"
	"github.com/charbel291291291/election2026/internal/server/models"
	"github.com/charbel291291291/election2026/internal/server/repositories/agents"
	"github.com/charbel291291291/election2026/internal/server/repositories/audit"
	"github.com/charbel291291291/election2026/internal/server/repositories/orgs"
)

// Privileged actions.
const (
	ActionSuspendOrg      = "SUSPEND_ORG"
	ActionActivateOrg     = "ACTIVATE_ORG"
	ActionChangePlan      = "CHANGE_PLAN"
	ActionBanUser         = "BAN_USER"
	ActionMaintenanceMode = "MAINTENANCE_MODE"
)

// AdminService executes privileged actions. Authorization is decided here
// on every call from the presented claims plus the agent's current database
// state; no client-side belief about elevation is ever consulted.
type AdminService struct {
	agents agents.Repository
	orgs   orgs.Repository
	audit  audit.Repository
	logger logging.Logger

	maintenance atomic.Bool
}

func NewAdminService(agentRepo agents.Repository, orgRepo orgs.Repository, auditRepo audit.Repository, logger logging.Logger) *AdminService {
	return &AdminService{agents: agentRepo, orgs: orgRepo, audit: auditRepo, logger: logger}
}

// MaintenanceActive reports whether the platform is in maintenance mode.
func (s *AdminService) MaintenanceActive() bool {
	return s.maintenance.Load()
}

// Authorize checks that the claims carry a live root grant and that the
// actor is still a non-banned root admin. An expired grant is reported
// distinctly so the client can drop its local mirror.
func (s *AdminService) Authorize(ctx context.Context, claims *auth.Claims, actor *models.Agent) error {
	if claims.Root && !claims.HasActiveRoot(time.Now()) {
		return common.ErrAuthorizationExpired
	}
	if !claims.HasActiveRoot(time.Now()) {
		return common.ErrAuthorizationDenied
	}
	if !actor.IsRootAdmin || actor.Banned {
		return common.ErrAuthorizationDenied
	}
	return nil
}

// InvokeAction authorizes and executes one privileged action, then appends
// an audit entry naming the actor, the action, its target and the origin
// address.
func (s *AdminService) InvokeAction(ctx context.Context, claims *auth.Claims, actor *models.Agent, action string, payload map[string]any, origin string) (map[string]any, error) {
	if err := s.Authorize(ctx, claims, actor); err != nil {
		return nil, err
	}

	var (
		target string
		result map[string]any
		err    error
	)

	switch action {
	case ActionSuspendOrg:
		target, result, err = s.setOrgActive(ctx, payload, false)
	case ActionActivateOrg:
		target, result, err = s.setOrgActive(ctx, payload, true)
	case ActionChangePlan:
		target, result, err = s.changePlan(ctx, payload)
	case ActionBanUser:
		target, result, err = s.banUser(ctx, payload)
	case ActionMaintenanceMode:
		target, result, err = s.setMaintenance(payload)
	default:
		return nil, fmt.Errorf("%w: unknown action %q", common.ErrValidation, action)
	}
	if err != nil {
		return nil, err
	}

	appendAudit(ctx, s.audit, s.logger, &models.AuditEntry{
		ActorID:    actor.ID,
		Action:     action,
		TargetID:   target,
		OriginAddr: origin,
	})

	return result, nil
}

func (s *AdminService) setOrgActive(ctx context.Context, payload map[string]any, active bool) (string, map[string]any, error) {
	orgID, err := payloadString(payload, "org_id")
	if err != nil {
		return "", nil, err
	}
	if err := s.orgs.SetActive(ctx, orgID, active); err != nil {
		return "", nil, mapRepoErr(err)
	}

	status := "suspended"
	if active {
		status = "active"
	}
	return orgID, map[string]any{"org_id": orgID, "status": status}, nil
}

func (s *AdminService) changePlan(ctx context.Context, payload map[string]any) (string, map[string]any, error) {
	orgID, err := payloadString(payload, "org_id")
	if err != nil {
		return "", nil, err
	}
	plan, err := payloadString(payload, "plan")
	if err != nil {
		return "", nil, err
	}
	maxUsers, err := payloadInt(payload, "max_users")
	if err != nil {
		return "", nil, err
	}

	if err := s.orgs.SetPlan(ctx, orgID, plan, maxUsers); err != nil {
		return "", nil, mapRepoErr(err)
	}
	return orgID, map[string]any{"org_id": orgID, "plan": plan, "max_users": maxUsers}, nil
}

func (s *AdminService) banUser(ctx context.Context, payload map[string]any) (string, map[string]any, error) {
	userID, err := payloadString(payload, "user_id")
	if err != nil {
		return "", nil, err
	}
	if err := s.agents.SetBanned(ctx, userID, true); err != nil {
		return "", nil, mapRepoErr(err)
	}
	return userID, map[string]any{"user_id": userID, "banned": true}, nil
}

func (s *AdminService) setMaintenance(payload map[string]any) (string, map[string]any, error) {
	enabled, err := payloadBool(payload, "enabled")
	if err != nil {
		return "", nil, err
	}
	s.maintenance.Store(enabled)
	return "", map[string]any{"maintenance": enabled}, nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("%w: target not found", common.ErrValidation)
	}
	return common.ErrInternal
}

// Payload values arrive as JSON, so numbers come in as float64 and booleans
// may come in as strings when entered through the CLI.

func payloadString(payload map[string]any, key string) (string, error) {
	v, ok := payload[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: missing field %q", common.ErrValidation, key)
	}
	return v, nil
}

func payloadInt(payload map[string]any, key string) (int, error) {
	switch v := payload[key].(type) {
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%w: field %q is not a number", common.ErrValidation, key)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: missing field %q", common.ErrValidation, key)
	}
}

func payloadBool(payload map[string]any, key string) (bool, error) {
	switch v := payload[key].(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("%w: field %q is not a boolean", common.ErrValidation, key)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: missing field %q", common.ErrValidation, key)
	}
}
