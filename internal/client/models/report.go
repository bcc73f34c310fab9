// Package models defines client-side data models used by the field agent CLI.
package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category classifies a field report.
type Category string

const (
	CategoryVoteCount Category = "vote_count"
	CategoryViolation Category = "violation"
	CategorySurvey    Category = "survey"
	CategoryLogistics Category = "logistics"
)

var ErrUnknownCategory = errors.New("unknown report category")

// ParseCategory validates a user-supplied category string.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryVoteCount, CategoryViolation, CategorySurvey, CategoryLogistics:
		return Category(s), nil
	}
	return "", ErrUnknownCategory
}

// Status is the report lifecycle status.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// SyncedMarker is appended to the notes of a report when it is submitted
// from the offline queue.
const SyncedMarker = " (Synced)"

// FieldReport is a structured observation recorded at a polling location.
//
// The id is assigned on the client at creation time, before any server
// round-trip. The server upserts by id, so a report resubmitted after a
// partially failed sync can never be duplicated.
type FieldReport struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	AuthorID       string    `json:"author_id"`
	Category       Category  `json:"category"`
	Notes          string    `json:"notes"`
	MetricValue    float64   `json:"metric_value"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	PhotoKey       string    `json:"photo_key,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	Status         Status    `json:"status"`
}

// NewFieldReport builds a report with a fresh id, the current timestamp and
// pending status. If annotation is non-empty it is appended to the notes.
func NewFieldReport(orgID, authorID string, category Category, notes, annotation string, metricValue, lat, lon float64) *FieldReport {
	if annotation != "" {
		notes = notes + "\n\n" + annotation
	}
	return &FieldReport{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		AuthorID:       authorID,
		Category:       category,
		Notes:          notes,
		MetricValue:    metricValue,
		Latitude:       lat,
		Longitude:      lon,
		CreatedAt:      time.Now().UTC(),
		Status:         StatusPending,
	}
}

// MarkSynced annotates the report for submission from the offline queue:
// the synced marker is appended once and the status flips to verified.
func (r *FieldReport) MarkSynced() {
	if r.Status == StatusVerified {
		return
	}
	r.Notes += SyncedMarker
	r.Status = StatusVerified
}
