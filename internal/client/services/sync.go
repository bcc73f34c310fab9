package services

import (
	"context"
	"errors"

	"github.com/charbel291291291/election2026/internal/client/api"
	"github.com/charbel291291291/election2026/internal/client/connectivity"
	"github.com/charbel291291291/election2026/internal/client/queue"
	"github.com/charbel291291291/election2026/internal/client/state"
	"github.com/charbel291291291/election2026/internal/common"
	"github.com/charbel291291291/election2026/internal/logging"
	"golang.org/x/sync/singleflight"
)

// SyncResult summarizes one drain of the offline queue.
type SyncResult struct {
	// Submitted counts reports confirmed by the remote store this pass.
	Submitted int
	// Rejected lists ids the remote store refused outright. They are
	// removed from the queue, since retrying them can never succeed,
	// and the caller should surface them to the user.
	Rejected []string
	// Retained lists ids kept in the queue after a transient failure.
	// The next sync trigger will try them again.
	Retained []string
}

// Syncer reconciles the local queue with the remote store. Safe to trigger
// from several places at once (connectivity events, a manual sync command):
// a single-flight guard ensures at most one drain runs at a time, so no
// report is ever submitted twice concurrently.
type Syncer struct {
	client api.Client
	queue  queue.Repository
	state  *state.State
	logger logging.Logger

	group singleflight.Group
}

func NewSyncer(client api.Client, q queue.Repository, st *state.State, logger logging.Logger) *Syncer {
	return &Syncer{client: client, queue: q, state: st, logger: logger}
}

// Sync drains the queue once. Concurrent callers join the in-flight drain
// and share its result.
func (s *Syncer) Sync(ctx context.Context) (*SyncResult, error) {
	v, err, _ := s.group.Do("drain", func() (any, error) {
		return s.drain(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*SyncResult), nil
}

// drain walks a queue snapshot in order. Failures are collected per entry,
// never short-circuiting the rest; only confirmed entries leave the queue.
func (s *Syncer) drain(ctx context.Context) (*SyncResult, error) {
	snapshot, err := s.queue.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	if len(snapshot) == 0 {
		return result, nil
	}

	for _, entry := range snapshot {
		// annotate the submitted copy; the queued row stays untouched
		// until the server confirms
		submitted := entry
		submitted.MarkSynced()

		err := s.client.SubmitReport(ctx, &submitted)
		switch {
		case err == nil:
			if err := s.queue.DeleteByID(ctx, entry.ID); err != nil {
				return nil, err
			}
			result.Submitted++

		case errors.Is(err, common.ErrRemoteRejected):
			// terminal: keeping it queued would retry forever
			if err := s.queue.DeleteByID(ctx, entry.ID); err != nil {
				return nil, err
			}
			result.Rejected = append(result.Rejected, entry.ID)
			s.logger.Warn(ctx, "report rejected by remote store", "id", entry.ID)

		default:
			result.Retained = append(result.Retained, entry.ID)
			s.logger.Info(ctx, "report retained for next sync", "id", entry.ID, "reason", err.Error())
		}
	}

	n, err := s.queue.Count(ctx)
	if err != nil {
		return nil, err
	}
	s.state.SetPending(n)

	return result, nil
}

// Watch triggers a sync every time the monitor reports connectivity
// restored. Runs until ctx is cancelled or the event channel closes.
func (s *Syncer) Watch(ctx context.Context, events <-chan connectivity.Event) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !ev.Online {
				continue
			}
			if _, err := s.Sync(ctx); err != nil {
				s.logger.Error(ctx, "sync after reconnect failed", "error", err.Error())
			}

		case <-ctx.Done():
			return
		}
	}
}
