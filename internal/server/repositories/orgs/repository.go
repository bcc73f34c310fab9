// Package orgs stores campaign organizations and their subscription state.
package orgs

import (
	"context"

	"github.com/charbel291291291/election2026/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, org *models.Organization) (*models.Organization, error)
	GetByID(ctx context.Context, id string) (*models.Organization, error)
	SetActive(ctx context.Context, id string, active bool) error
	SetPlan(ctx context.Context, id, plan string, maxUsers int) error
}
