package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charbel291291291/election2026/internal/server/migrations"
	"github.com/charbel291291291/election2026/internal/server/repositories/agents"
	"github.com/charbel291291291/election2026/internal/server/repositories/audit"
	"github.com/charbel291291291/election2026/internal/server/repositories/orgs"
	"github.com/charbel291291291/election2026/internal/server/repositories/reports"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
	db      *sql.DB
	agents  agents.Repository
	orgs    orgs.Repository
	reports reports.Repository
	audit   audit.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Agents() agents.Repository {
	return m.agents
}

func (m *PostgresRepositoryManager) Orgs() orgs.Repository {
	return m.orgs
}

func (m *PostgresRepositoryManager) Reports() reports.Repository {
	return m.reports
}

func (m *PostgresRepositoryManager) Audit() audit.Repository {
	return m.audit
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, m.db, ".")
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:      db,
		agents:  agents.NewPostgresRepository(db),
		orgs:    orgs.NewPostgresRepository(db),
		reports: reports.NewPostgresRepository(db),
		audit:   audit.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
