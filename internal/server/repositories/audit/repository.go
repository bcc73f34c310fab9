// Package audit is the write-only log of privileged events. Entries are
// appended and listed; there is deliberately no update or delete.
package audit

import (
	"context"

	"github.com/charbel291291291/election2026/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, entry *models.AuditEntry) error
	List(ctx context.Context, limit int) ([]models.AuditEntry, error)
}
