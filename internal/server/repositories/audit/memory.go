package audit

import (
	"context"
	"sync"
	"time"

	"github.com/charbel291291291/election2026/internal/server/models"
	"github.com/google/uuid"
)

// InMemoryRepository is a slice-backed Repository for tests.
type InMemoryRepository struct {
	mu      sync.Mutex
	entries []models.AuditEntry
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Append(ctx context.Context, entry *models.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *InMemoryRepository) List(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.entries)
	if limit > 0 && limit < n {
		n = limit
	}

	// newest first
	result := make([]models.AuditEntry, 0, n)
	for i := len(r.entries) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, r.entries[i])
	}
	return result, nil
}
