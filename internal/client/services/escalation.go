package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charbel291291291/election2026/internal/client/api"
	"github.com/charbel291291291/election2026/internal/client/state"
	"github.com/charbel291291291/election2026/internal/common"
)

const (
	// maxPINAttempts wrong PINs in a row trigger the cooldown.
	maxPINAttempts  = 5
	lockoutCooldown = 30 * time.Second

	// rootSessionTTL mirrors the server-side grant; used only to set the
	// local expiry hint. The server enforces the real deadline.
	rootSessionTTL = 20 * time.Minute

	defaultVerifyTimeout = 5 * time.Second
)

// Escalator manages time-boxed privilege escalation from the client side.
// It keeps a best-effort attempt lockout and a UI-gating elevation mirror;
// neither replaces the server's own checks on every privileged call.
type Escalator struct {
	client        api.Client
	state         *state.State
	verifyTimeout time.Duration

	mu          sync.Mutex
	failed      int
	lockedUntil time.Time

	now func() time.Time
}

func NewEscalator(client api.Client, st *state.State) *Escalator {
	return &Escalator{
		client:        client,
		state:         st,
		verifyTimeout: defaultVerifyTimeout,
		now:           time.Now,
	}
}

// SetVerifyTimeout overrides the default PIN verification deadline.
func (e *Escalator) SetVerifyTimeout(d time.Duration) {
	if d > 0 {
		e.verifyTimeout = d
	}
}

// checkLockout returns ErrLockedOut while the cooldown is running and
// resets the counter once it has elapsed.
func (e *Escalator) checkLockout() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	if !e.lockedUntil.IsZero() {
		if now.Before(e.lockedUntil) {
			remaining := e.lockedUntil.Sub(now).Round(time.Second)
			return fmt.Errorf("%w: retry in %s", common.ErrLockedOut, remaining)
		}
		e.failed = 0
		e.lockedUntil = time.Time{}
	}
	return nil
}

func (e *Escalator) recordFailure() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failed++
	if e.failed >= maxPINAttempts {
		e.lockedUntil = e.now().Add(lockoutCooldown)
	}
}

func (e *Escalator) reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failed = 0
	e.lockedUntil = time.Time{}
}

// Escalate verifies the root PIN with the server. The call carries a short
// timeout and a timeout counts as verification failure, never as success.
// On success only a boolean mirror is kept locally; the authoritative claim
// lives in the refreshed session token and is re-checked server-side on
// every privileged action.
func (e *Escalator) Escalate(ctx context.Context, pin string) error {
	if err := e.checkLockout(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, e.verifyTimeout)
	defer cancel()

	err := e.client.EscalateRoot(ctx, pin)
	if err != nil {
		if errors.Is(err, common.ErrAuthorizationDenied) || errors.Is(err, common.ErrUnauthorized) {
			e.recordFailure()
			return err
		}
		// network failure or timeout: fail closed, but do not count it
		// as a wrong-PIN attempt
		return fmt.Errorf("root verification failed: %w", err)
	}

	e.reset()
	e.state.SetElevated(e.now().Add(rootSessionTTL))
	return nil
}

// InvokeAction runs a privileged action. It always goes to the server;
// the local mirror is never consulted as an authorization source. If the
// server reports the claim expired, the mirror is dropped so the UI stops
// advertising elevation.
func (e *Escalator) InvokeAction(ctx context.Context, action string, payload map[string]any) (json.RawMessage, error) {
	result, err := e.client.InvokeRootAction(ctx, action, payload)
	if err != nil {
		if errors.Is(err, common.ErrAuthorizationExpired) {
			e.state.DropElevation()
		}
		return nil, err
	}
	return result, nil
}
