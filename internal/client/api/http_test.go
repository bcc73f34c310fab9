package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charbel291291291/election2026/internal/client/models"
	"github.com/charbel291291291/election2026/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "70123456", req.PhoneNumber)
		assert.Equal(t, "4321", req.PIN)

		json.NewEncoder(w).Encode(Session{
			Token:   "tok-1",
			Profile: Profile{ID: "agent-1", OrganizationID: "org-1"},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	session, err := c.Login(context.Background(), "70123456", "4321")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", session.Token)
	assert.Equal(t, "tok-1", c.Token())
	assert.Equal(t, "agent-1", session.Profile.ID)
}

func TestSubmitReport_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.SetToken("tok-1")

	err := c.SubmitReport(context.Background(), &models.FieldReport{ID: "r-1"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestSubmitReport_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "try later", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	err := c.SubmitReport(context.Background(), &models.FieldReport{ID: "r-1"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSubmitReport_DoesNotRetryRejection(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"bad category"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	err := c.SubmitReport(context.Background(), &models.FieldReport{ID: "r-1"})
	require.ErrorIs(t, err, common.ErrRemoteRejected)
	assert.Equal(t, int32(1), calls.Load())
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"bad token"}`, want: common.ErrUnauthorized},
		{name: "denied", status: http.StatusForbidden, body: `{"error":"no claim"}`, want: common.ErrAuthorizationDenied},
		{name: "expired", status: http.StatusForbidden, body: `{"error":"expired","code":"root_expired"}`, want: common.ErrAuthorizationExpired},
		{name: "rejected", status: http.StatusUnprocessableEntity, body: `{"error":"invalid"}`, want: common.ErrRemoteRejected},
		{name: "server error", status: http.StatusInternalServerError, body: ``, want: common.ErrNetworkUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapStatus(tt.status, []byte(tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEscalateRoot_SwapsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/root", r.URL.Path)
		json.NewEncoder(w).Encode(escalateResponse{Token: "root-tok"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.SetToken("tok-1")

	require.NoError(t, c.EscalateRoot(context.Background(), "9696"))
	assert.Equal(t, "root-tok", c.Token())
}

func TestEscalateRoot_TimeoutSurfacesAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.EscalateRoot(ctx, "9696")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNetworkUnavailable)
}
