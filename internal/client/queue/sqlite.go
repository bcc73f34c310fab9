package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/charbel291291291/election2026/internal/client/models"
	"github.com/charbel291291291/election2026/internal/common"
	"github.com/charbel291291291/election2026/internal/dbx"

	sqlite "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// mapStorageErr converts a SQLITE_FULL failure into the sentinel the
// submission gateway surfaces to the caller.
func mapStorageErr(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqlitelib.SQLITE_FULL {
		return fmt.Errorf("queue put: %w", common.ErrStorageExhausted)
	}
	return err
}

// Put upserts a report by id. On conflict every column is replaced, so
// repeating an identical Put is a no-op at the data level.
func (r *SQLiteRepository) Put(ctx context.Context, report *models.FieldReport) error {
	query := `INSERT INTO outbox (id, organization_id, author_id, category, notes, metric_value, latitude, longitude, photo_key, created_at, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET organization_id = excluded.organization_id,
				author_id = excluded.author_id,
				category = excluded.category,
				notes = excluded.notes,
				metric_value = excluded.metric_value,
				latitude = excluded.latitude,
				longitude = excluded.longitude,
				photo_key = excluded.photo_key,
				created_at = excluded.created_at,
				status = excluded.status
	`
	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.OrganizationID, report.AuthorID, string(report.Category), report.Notes,
		report.MetricValue, report.Latitude, report.Longitude, report.PhotoKey, report.CreatedAt, string(report.Status))
	if err != nil {
		return fmt.Errorf("failed to upsert queue entry: %w", mapStorageErr(err))
	}
	return nil
}

// GetAll lists the queued reports in insertion (rowid) order.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.FieldReport, error) {
	query := `SELECT id, organization_id, author_id, category, notes, metric_value, latitude, longitude, photo_key, created_at, status
			FROM outbox ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select queue entries: %w", err)
	}
	defer rows.Close()

	var result []models.FieldReport
	for rows.Next() {
		var item models.FieldReport
		var category, status string
		if err := rows.Scan(&item.ID, &item.OrganizationID, &item.AuthorID, &category, &item.Notes,
			&item.MetricValue, &item.Latitude, &item.Longitude, &item.PhotoKey, &item.CreatedAt, &status); err != nil {
			return nil, err
		}
		item.Category = models.Category(category)
		item.Status = models.Status(status)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByID removes one entry. Deleting an id that is already gone is fine.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM outbox WHERE id=?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete queue entry: %w", err)
	}
	return nil
}

// Clear empties the queue.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM outbox`); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	return nil
}

// Count returns the number of queued entries.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM outbox`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count queue entries: %w", err)
	}
	return n, nil
}
