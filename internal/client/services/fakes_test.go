package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"testing"

	"github.com/charbel291291291/election2026/internal/client/api"
	"github.com/charbel291291291/election2026/internal/client/models"
	"github.com/charbel291291291/election2026/internal/client/queue"
	"github.com/charbel291291291/election2026/internal/logging"
	"github.com/stretchr/testify/require"

	"log/slog"

	_ "modernc.org/sqlite"
)

// fakeClient implements api.Client for tests. Error behavior is scripted
// per report id; every accepted submission is recorded.
type fakeClient struct {
	api.Client

	mu        sync.Mutex
	submitted []models.FieldReport
	submitErr map[string]error

	// gate, when set, blocks SubmitReport until released (single-flight tests)
	gate chan struct{}

	escalateErr error
	actionErr   error
	actionOut   json.RawMessage
	pingErr     error
}

func (f *fakeClient) SubmitReport(ctx context.Context, r *models.FieldReport) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.submitErr[r.ID]; ok {
		return err
	}
	f.submitted = append(f.submitted, *r)
	return nil
}

func (f *fakeClient) EscalateRoot(ctx context.Context, pin string) error {
	return f.escalateErr
}

func (f *fakeClient) InvokeRootAction(ctx context.Context, action string, payload map[string]any) (json.RawMessage, error) {
	if f.actionErr != nil {
		return nil, f.actionErr
	}
	return f.actionOut, nil
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) submittedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.submitted))
	for _, r := range f.submitted {
		ids = append(ids, r.ID)
	}
	return ids
}

func setupQueue(t *testing.T, name string) (queue.Repository, *sql.DB) {
	t.Helper()
	db, err := queue.Open(context.Background(), "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`DELETE FROM outbox`)
	require.NoError(t, err)
	return queue.NewSQLiteRepository(db), db
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}
