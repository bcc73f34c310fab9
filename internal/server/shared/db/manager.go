// Package db wires repository implementations behind a single manager so
// services do not care whether they run against Postgres or in-memory
// stores.
package db

import (
	"context"
	"database/sql"

	"github.com/charbel291291291/election2026/internal/server/repositories/agents"
	"github.com/charbel291291291/election2026/internal/server/repositories/audit"
	"github.com/charbel291291291/election2026/internal/server/repositories/orgs"
	"github.com/charbel291291291/election2026/internal/server/repositories/reports"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Agents() agents.Repository
	Orgs() orgs.Repository
	Reports() reports.Repository
	Audit() audit.Repository
}
