package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// List fetches the live report list for the agent's organization.
func (a *App) List(ctx context.Context) error {
	reports, err := a.client.ListReports(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	for _, r := range reports {
		notes := r.Notes
		if i := strings.IndexByte(notes, '\n'); i >= 0 {
			notes = notes[:i]
		}
		printlnFn(fmt.Sprintf("%s  %-10s %-8s %s", r.CreatedAt.Format("2006-01-02 15:04"), r.Category, r.Status, notes))
	}
	return nil
}

// Pending prints the number of reports waiting in the offline queue.
func (a *App) Pending(ctx context.Context) error {
	printlnFn("Pending reports:", a.state.Pending())
	return nil
}

// Sync drains the offline queue into the remote store and summarizes the
// outcome.
func (a *App) Sync(ctx context.Context) error {
	result, err := a.syncer.Sync(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	printlnFn("Submitted:", result.Submitted)
	if len(result.Rejected) > 0 {
		printlnFn("Rejected by server (removed from queue):", strings.Join(result.Rejected, ", "))
	}
	if len(result.Retained) > 0 {
		printlnFn("Kept for next sync:", strings.Join(result.Retained, ", "))
	}
	return nil
}
