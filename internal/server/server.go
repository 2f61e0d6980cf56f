// AngelaMos | 2026
// server.go

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelamos/bookclub-api/internal/config"
)

type Server struct {
	httpServer *http.Server
	router     chi.Router
	logger     *slog.Logger
}

func New(cfg config.ServerConfig, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	return &Server{
		router: router,
		logger: logger,
		httpServer: &http.Server{
			Addr:         cfg.Address(),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}

	return nil
}

// Shutdown waits out the drain delay so load balancers stop routing here,
// then lets in-flight requests finish.
func (s *Server) Shutdown(ctx context.Context, drain time.Duration) error {
	s.logger.Info("draining connections", "delay", drain)

	select {
	case <-time.After(drain):
	case <-ctx.Done():
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
