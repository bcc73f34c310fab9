package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charbel291291291/election2026/internal/common"
	"github.com/charbel291291291/election2026/internal/server/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, report *models.Report) error {
	query :=
		`INSERT INTO reports (id, organization_id, author_id, category, notes, metric_value, latitude, longitude, photo_key, created_at, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET
		     notes = EXCLUDED.notes,
		     metric_value = EXCLUDED.metric_value,
		     latitude = EXCLUDED.latitude,
		     longitude = EXCLUDED.longitude,
		     photo_key = EXCLUDED.photo_key,
		     status = EXCLUDED.status
		 `

	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.OrganizationID, report.AuthorID, report.Category,
		report.Notes, report.MetricValue, report.Latitude, report.Longitude,
		report.PhotoKey, report.CreatedAt, report.Status,
	)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	query :=
		`SELECT id, organization_id, author_id, category, notes, metric_value, latitude, longitude, photo_key, created_at, status
		 FROM reports
		 WHERE id = $1
		 `

	report := &models.Report{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&report.ID, &report.OrganizationID, &report.AuthorID, &report.Category,
		&report.Notes, &report.MetricValue, &report.Latitude, &report.Longitude,
		&report.PhotoKey, &report.CreatedAt, &report.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return report, nil
}

func (r *PostgresRepository) ListByOrg(ctx context.Context, orgID string) ([]models.Report, error) {
	query :=
		`SELECT id, organization_id, author_id, category, notes, metric_value, latitude, longitude, photo_key, created_at, status
		 FROM reports
		 WHERE organization_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var result []models.Report
	for rows.Next() {
		var report models.Report
		if err := rows.Scan(
			&report.ID, &report.OrganizationID, &report.AuthorID, &report.Category,
			&report.Notes, &report.MetricValue, &report.Latitude, &report.Longitude,
			&report.PhotoKey, &report.CreatedAt, &report.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, report)
	}

	return result, rows.Err()
}
