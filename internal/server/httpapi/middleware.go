package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/charbel291291291/election2026/internal/common"
	"github.com/charbel291291291/election2026/internal/server/auth"
	"github.com/charbel291291291/election2026/internal/server/models"
)

type ctxKey int

const (
	ctxKeyClaims ctxKey = iota
	ctxKeyAgent
)

// claimsFrom returns the validated claims stored by the auth middleware.
func claimsFrom(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(ctxKeyClaims).(*auth.Claims)
	return c
}

// agentFrom returns the authenticated agent stored by the auth middleware.
func agentFrom(ctx context.Context) *models.Agent {
	a, _ := ctx.Value(ctxKeyAgent).(*models.Agent)
	return a
}

// originAddr extracts the caller address for audit entries.
func originAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// authMiddleware validates the Bearer token, loads the agent's current
// database state and stores both on the request context. Banned agents are
// cut off here even when their token is still valid.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, common.ErrUnauthorized)
			return
		}

		claims, err := s.auth.ParseToken(token)
		if err != nil {
			writeError(w, err)
			return
		}

		agent, err := s.auth.GetAgent(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		if agent.Banned {
			writeError(w, common.ErrUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyClaims, claims)
		ctx = context.WithValue(ctx, ctxKeyAgent, agent)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// maintenanceMiddleware rejects non-privileged traffic while maintenance
// mode is active. Root escalation and privileged actions stay reachable so
// an administrator can turn maintenance off again.
func (s *Server) maintenanceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.admin.MaintenanceActive() && !strings.HasPrefix(r.URL.Path, "/api/v1/auth/root") && !strings.HasPrefix(r.URL.Path, "/api/v1/root/") {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "maintenance in progress", Code: "maintenance"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
