// Package services contains the agent's application services: the report
// submission gateway, the queue synchronization engine and the root-session
// escalator.
package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charbel291291291/election2026/internal/client/api"
	"github.com/charbel291291291/election2026/internal/client/connectivity"
	"github.com/charbel291291291/election2026/internal/client/models"
	"github.com/charbel291291291/election2026/internal/client/queue"
	"github.com/charbel291291291/election2026/internal/client/state"
	"github.com/charbel291291291/election2026/internal/common"
	"github.com/charbel291291291/election2026/internal/logging"
	"github.com/charbel291291291/election2026/internal/netx"
)

// SubmitOutcome distinguishes "sent to the server" from "queued locally,
// will sync". Both are success from the caller's point of view.
type SubmitOutcome string

const (
	OutcomeSent   SubmitOutcome = "sent"
	OutcomeQueued SubmitOutcome = "queued"
)

// ReportInput is everything the gateway needs to build a report. Identity
// and timestamps are assigned locally, never by the server.
type ReportInput struct {
	Category    string
	Notes       string
	Annotation  string
	MetricValue float64
	Latitude    float64
	Longitude   float64
	PhotoPath   string
}

// Gateway is the single entry point for creating field reports.
type Gateway struct {
	client  api.Client
	queue   queue.Repository
	monitor *connectivity.Monitor
	state   *state.State
	logger  logging.Logger
	profile api.Profile
}

func NewGateway(client api.Client, q queue.Repository, monitor *connectivity.Monitor, st *state.State, logger logging.Logger) *Gateway {
	return &Gateway{client: client, queue: q, monitor: monitor, state: st, logger: logger}
}

// SetProfile records the authenticated agent whose reports the gateway
// creates. Must be called after login, before Submit.
func (g *Gateway) SetProfile(p api.Profile) {
	g.profile = p
}

// Submit records a new report. Online it goes straight to the remote store;
// offline it is persisted in the local queue. A queue persistence failure is
// surfaced synchronously; a report is never dropped silently.
func (g *Gateway) Submit(ctx context.Context, in ReportInput) (SubmitOutcome, *models.FieldReport, error) {
	category, err := models.ParseCategory(in.Category)
	if err != nil {
		return "", nil, err
	}

	report := models.NewFieldReport(g.profile.OrganizationID, g.profile.ID, category,
		in.Notes, in.Annotation, in.MetricValue, in.Latitude, in.Longitude)

	if g.monitor.Online() {
		if in.PhotoPath != "" {
			if err := g.attachPhoto(ctx, report, in.PhotoPath); err != nil {
				return "", nil, fmt.Errorf("photo upload: %w", err)
			}
		}

		err := g.client.SubmitReport(ctx, report)
		if err == nil {
			return OutcomeSent, report, nil
		}
		if !errors.Is(err, common.ErrNetworkUnavailable) {
			return "", nil, err
		}
		// the monitor has not noticed the drop yet; fall through to the queue
	}

	if err := g.queue.Put(ctx, report); err != nil {
		return "", nil, err
	}
	if err := g.refreshPending(ctx); err != nil {
		// the report is durably queued at this point; failing the submit
		// over a stale counter would push the user into a retry that
		// mints a duplicate id
		g.logger.Warn(ctx, "pending count refresh failed", "error", err.Error())
	}
	return OutcomeQueued, report, nil
}

// attachPhoto uploads the photo through a server-issued presigned URL and
// records the storage key on the report. Photos are only attached while
// online; queued reports travel without one.
func (g *Gateway) attachPhoto(ctx context.Context, report *models.FieldReport, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	grant, err := g.client.PresignPhoto(ctx)
	if err != nil {
		return err
	}

	if err := netx.UploadToPresignedURL(ctx, grant.URL, data, "image/jpeg"); err != nil {
		return err
	}

	report.PhotoKey = grant.Key
	return nil
}

// refreshPending recomputes the pending count from the queue itself.
func (g *Gateway) refreshPending(ctx context.Context) error {
	n, err := g.queue.Count(ctx)
	if err != nil {
		return err
	}
	g.state.SetPending(n)
	return nil
}
