package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/charbel291291291/election2026/internal/logging"
	"github.com/charbel291291291/election2026/internal/server/services"
)

// Server is the HTTP front of the dashboard API. All state-changing
// endpoints sit behind bearer-token auth; the privileged subset
// additionally requires an active root grant, which the admin service
// checks per call.
type Server struct {
	addr    string
	logger  logging.Logger
	auth    *services.AuthService
	reports *services.ReportService
	admin   *services.AdminService

	httpServer *http.Server
}

func NewServer(addr string, logger logging.Logger, auth *services.AuthService, reports *services.ReportService, admin *services.AdminService) *Server {
	return &Server{
		addr:    addr,
		logger:  logger,
		auth:    auth,
		reports: reports,
		admin:   admin,
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/auth/login", s.handleLogin).Methods(http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(s.authMiddleware, s.maintenanceMiddleware)
	api.HandleFunc("/auth/root", s.handleEscalateRoot).Methods(http.MethodPost)
	api.HandleFunc("/reports", s.handleSubmitReport).Methods(http.MethodPost)
	api.HandleFunc("/reports", s.handleListReports).Methods(http.MethodGet)
	api.HandleFunc("/reports/presign", s.handlePresign).Methods(http.MethodPost)
	api.HandleFunc("/root/action", s.handleRootAction).Methods(http.MethodPost)

	return r
}

// Run serves until the context is cancelled, then shuts down
// gracefully with a short drain window.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info(shutdownCtx, "http server shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}
