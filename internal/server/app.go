// Package server initializes and runs the campaign backend. It wires the
// repository manager, the domain services and the HTTP API, and handles
// graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charbel291291291/election2026/internal/logging"
	"github.com/charbel291291291/election2026/internal/server/config"
	"github.com/charbel291291291/election2026/internal/server/httpapi"
	"github.com/charbel291291291/election2026/internal/server/services"
	"github.com/charbel291291291/election2026/internal/server/shared/db"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	authService   *services.AuthService
	reportService *services.ReportService
	adminService  *services.AdminService
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	as := services.NewAuthService(rm.Agents(), rm.Audit(), c, logger)
	rs := services.NewReportService(rm.Reports(), c)
	ads := services.NewAdminService(rm.Agents(), rm.Orgs(), rm.Audit(), logger)

	return &App{config: c, logger: logger, authService: as, reportService: rs, adminService: ads}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.authService, app.reportService, app.adminService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
