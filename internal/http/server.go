package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jaekwang-park/todo-crud/internal/config"
	"github.com/jaekwang-park/todo-crud/internal/http/handler"
	"github.com/jaekwang-park/todo-crud/internal/middleware"
	"github.com/jaekwang-park/todo-crud/internal/service"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(port string, logger *slog.Logger, todoSvc *service.TodoService, db handler.Pinger, cfg config.HTTPConfig) *Server {
	router := NewRouter(todoSvc, db)

	chain := middleware.Chain(logger, router)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      chain,
			ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
