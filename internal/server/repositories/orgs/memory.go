package orgs

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
	mu   sync.Mutex
	orgs map[string]models.Organization
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orgs: map[string]models.Organization{}}
}

func (r *InMemoryRepository) Create(ctx context.Context, org *models.Organization) (*models.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	if org.CreatedAt.IsZero() {
		org.CreatedAt = time.Now().UTC()
	}
	r.orgs[org.ID] = *org
	return org, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orgs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &o, nil
}

func (r *InMemoryRepository) SetActive(ctx context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orgs[id]
	if !ok {
		return common.ErrNotFound
	}
	o.Active = active
	r.orgs[id] = o
	return nil
}

func (r *InMemoryRepository) SetPlan(ctx context.Context, id, plan string, maxUsers int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orgs[id]
	if !ok {
		return common.ErrNotFound
	}
	o.SubscriptionPlan = plan
	o.MaxUsers = maxUsers
	r.orgs[id] = o
	return nil
}
