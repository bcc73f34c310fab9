package queue

import (
	"context"

	"github.com/charbel291291291/election2026/internal/client/models"
)

// Repository is the durable local queue of field reports awaiting
// transmission. Queue membership itself is the pending signal: an entry
// exists exactly while its report is unconfirmed by the server.
type Repository interface {
	// Put inserts or overwrites the entry for the report's id. Idempotent:
	// repeating the same id and payload has no additional effect. Returns
	// common.ErrStorageExhausted when the underlying store is out of space.
	Put(ctx context.Context, report *models.FieldReport) error

	// GetAll returns a snapshot of the queue in insertion order.
	GetAll(ctx context.Context) ([]models.FieldReport, error)

	// DeleteByID removes a single confirmed entry. Removing an absent id
	// is not an error (a concurrent drain may have removed it already).
	DeleteByID(ctx context.Context, id string) error

	// Clear empties the queue. Only the sync engine calls this, and only
	// after every snapshot entry was confirmed submitted.
	Clear(ctx context.Context) error

	// Count reports the number of queued entries. The pending count shown
	// to the user is always recomputed from here, never tracked separately.
	Count(ctx context.Context) (int, error)
}
