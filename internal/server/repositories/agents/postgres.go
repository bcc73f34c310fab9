package agents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charbel291291291/election2026/internal/common"
	"github.com/charbel291291291/election2026/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, agent *models.Agent) (*models.Agent, error) {
	if agent.ID == "" {
		agent.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO agents (id, organization_id, full_name, phone_number, role, pin_hash, root_pin_hash, is_root_admin, banned)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		agent.ID, agent.OrganizationID, agent.FullName, agent.PhoneNumber,
		agent.Role, agent.PINHash, agent.RootPINHash, agent.IsRootAdmin, agent.Banned,
	).Scan(&agent.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return agent, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Agent, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByPhone(ctx context.Context, phone string) (*models.Agent, error) {
	return r.getOne(ctx, `WHERE phone_number = $1`, phone)
}

func (r *PostgresRepository) getOne(ctx context.Context, where string, arg any) (*models.Agent, error) {
	query :=
		`SELECT id, organization_id, full_name, phone_number, role, pin_hash, root_pin_hash, is_root_admin, banned, created_at
		 FROM agents ` + where

	agent := &models.Agent{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&agent.ID, &agent.OrganizationID, &agent.FullName, &agent.PhoneNumber,
		&agent.Role, &agent.PINHash, &agent.RootPINHash, &agent.IsRootAdmin,
		&agent.Banned, &agent.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return agent, nil
}

func (r *PostgresRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE agents SET banned = $2 WHERE id = $1`, id, banned)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
