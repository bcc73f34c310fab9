// Package reports stores submitted field reports.
package reports

import (
	"context"

	"github.com/charbel291291291/election2026/internal/server/models"
)

// Repository is the remote report store. Upsert is keyed by the
// client-assigned id so that resubmission of an already-confirmed report is
// harmless.
type Repository interface {
	Upsert(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	ListByOrg(ctx context.Context, orgID string) ([]models.Report, error)
}
