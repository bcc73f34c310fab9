package db

import (
	"context"
	"database/sql"

	"github.com/charbel291291291/election2026/internal/server/repositories/agents"
	"github.com/charbel291291291/election2026/internal/server/repositories/audit"
	"github.com/charbel291291291/election2026/internal/server/repositories/orgs"
	"github.com/charbel291291291/election2026/internal/server/repositories/reports"
)

type InMemoryRepositoryManager struct {
	agents  agents.Repository
	orgs    orgs.Repository
	reports reports.Repository
	audit   audit.Repository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Agents() agents.Repository {
	return m.agents
}

func (m *InMemoryRepositoryManager) Orgs() orgs.Repository {
	return m.orgs
}

func (m *InMemoryRepositoryManager) Reports() reports.Repository {
	return m.reports
}

func (m *InMemoryRepositoryManager) Audit() audit.Repository {
	return m.audit
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		agents:  agents.NewInMemoryRepository(),
		orgs:    orgs.NewInMemoryRepository(),
		reports: reports.NewInMemoryRepository(),
		audit:   audit.NewInMemoryRepository(),
	}
}
