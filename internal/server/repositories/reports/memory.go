package reports

import (
	"context"
	"sort"
	"sync"

	"github.com/charbel291291291/election2026/internal/common"
	"github.com/charbel291291291/election2026/internal/server/models"
)

// InMemoryRepository is a map-backed Repository for tests.
type InMemoryRepository struct {
	mu      sync.Mutex
	reports map[string]models.Report
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{reports: map[string]models.Report{}}
}

func (r *InMemoryRepository) Upsert(ctx context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[report.ID] = *report
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep, ok := r.reports[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &rep, nil
}

func (r *InMemoryRepository) ListByOrg(ctx context.Context, orgID string) ([]models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []models.Report
	for _, rep := range r.reports {
		if rep.OrganizationID == orgID {
			result = append(result, rep)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Count reports how many entries the store holds, across organizations.
func (r *InMemoryRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}
