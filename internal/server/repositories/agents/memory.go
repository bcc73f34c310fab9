package agents

import (
	"context"
	"sync"
	"time"

	"github.com/charbel291291291/election2026/internal/common"
	"github.com/charbel291291291/election2026/internal/server/models"
	"github.com/google/uuid"
)

// InMemoryRepository is a map-backed Repository for tests.
type InMemoryRepository struct {
	mu     sync.Mutex
	agents map[string]models.Agent
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{agents: map[string]models.Agent{}}
}

func (r *InMemoryRepository) Create(ctx context.Context, agent *models.Agent) (*models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if agent.ID == "" {
		agent.ID = uuid.NewString()
	}
	if agent.CreatedAt.IsZero() {
		agent.CreatedAt = time.Now().UTC()
	}
	r.agents[agent.ID] = *agent
	return agent, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.agents[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &a, nil
}

func (r *InMemoryRepository) GetByPhone(ctx context.Context, phone string) (*models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.agents {
		if a.PhoneNumber == phone {
			a := a
			return &a, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *InMemoryRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.agents[id]
	if !ok {
		return common.ErrNotFound
	}
	a.Banned = banned
	r.agents[id] = a
	return nil
}
