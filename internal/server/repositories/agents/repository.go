// Package agents stores campaign agents and their credential hashes.
package agents

import (
	"context"

	"github.com/charbel291291291/election2026/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, agent *models.Agent) (*models.Agent, error)
	GetByID(ctx context.Context, id string) (*models.Agent, error)
	GetByPhone(ctx context.Context, phone string) (*models.Agent, error)
	SetBanned(ctx context.Context, id string, banned bool) error
}
