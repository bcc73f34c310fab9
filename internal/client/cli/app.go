package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/charbel291291291/election2026/internal/client/api"
	"github.com/charbel291291291/election2026/internal/client/config"
	"github.com/charbel291291291/election2026/internal/client/connectivity"
	"github.com/charbel291291291/election2026/internal/client/queue"
	"github.com/charbel291291291/election2026/internal/client/services"
	"github.com/charbel291291291/election2026/internal/client/state"
	"github.com/charbel291291291/election2026/internal/logging"

	_ "modernc.org/sqlite"
)

// App owns the wired client components and drives the interactive session.
type App struct {
	config  *config.Config
	db      *sql.DB
	client  api.Client
	monitor *connectivity.Monitor
	state   *state.State

	gateway   *services.Gateway
	syncer    *services.Syncer
	escalator *services.Escalator

	profile *api.Profile
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := queue.Open(ctx, c.QueueDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening offline queue: %w", err)
	}

	repo := queue.NewSQLiteRepository(db)
	apiClient := api.NewHTTPClient(c.ServerBaseURL)
	st := state.New()
	monitor := connectivity.NewMonitor(apiClient, c.OnlineCheckInterval)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	gateway := services.NewGateway(apiClient, repo, monitor, st, logger)
	syncer := services.NewSyncer(apiClient, repo, st, logger)
	escalator := services.NewEscalator(apiClient, st)
	escalator.SetVerifyTimeout(c.VerifyTimeout)

	return &App{
		config:    c,
		db:        db,
		client:    apiClient,
		monitor:   monitor,
		state:     st,
		gateway:   gateway,
		syncer:    syncer,
		escalator: escalator,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.profile != nil
}

// getStatus renders the prompt suffix: login, connectivity, elevation and
// the pending-sync count.
func (a *App) getStatus() string {
	s := ""
	if a.profile != nil {
		s = a.profile.PhoneNumber + " "
	}
	if a.monitor.Online() {
		s += "online"
	} else {
		s += "offline"
	}
	if a.state.Elevated() {
		s += " root"
	}
	if n := a.state.Pending(); n > 0 {
		s += fmt.Sprintf(" pending:%d", n)
	}
	return fmt.Sprintf("(%s)", s)
}

// Run starts the background connectivity watcher and the REPL, blocking
// until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.db.Close()
	defer a.client.Close()

	go a.monitor.Run(ctx)
	go a.syncer.Watch(ctx, a.monitor.Subscribe())

	printlnFn("Field Agent CLI (type 'help' for commands)")
	_ = a.Login(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
