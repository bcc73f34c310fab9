package orgs

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

func (r *PostgresRepository) Create(ctx context.Context, org *models.Organization) (*models.Organization, error) {
	if org.ID == "" {
		org.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO organizations (id, name, subscription_plan, max_users, active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		org.ID, org.Name, org.SubscriptionPlan, org.MaxUsers, org.Active,
	).Scan(&org.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return org, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	query :=
		`SELECT id, name, subscription_plan, max_users, active, created_at
		 FROM organizations
		 WHERE id = $1
		 `

	org := &models.Organization{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.SubscriptionPlan, &org.MaxUsers, &org.Active, &org.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return org, nil
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.update(ctx, `UPDATE organizations SET active = $2 WHERE id = $1`, id, active)
}

func (r *PostgresRepository) SetPlan(ctx context.Context, id, plan string, maxUsers int) error {
	return r.update(ctx, `UPDATE organizations SET subscription_plan = $2, max_users = $3 WHERE id = $1`, id, plan, maxUsers)
}

func (r *PostgresRepository) update(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
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
