// Package server exposes the editing core over HTTP for the editing
// surface: document updates in, outline/preview/export out.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ebisse/draftex"
)

// Server is the HTTP surface over one editing session.
type Server struct {
	svc       *draftex.Service
	assistant draftex.Assistant
	cfg       draftex.ServerConfig
	logger    *zap.Logger
	server    *http.Server
}

// New creates a server. assistant may be nil, which disables the
// assistant endpoint.
func New(svc *draftex.Service, assistant draftex.Assistant, cfg draftex.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		svc:       svc,
		assistant: assistant,
		cfg:       cfg,
		logger:    logger,
	}
}

// Router assembles the API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/document", s.handleGetDocument)
		r.Put("/document", s.handleEditDocument)
		r.Post("/document", s.handleInitDocument)
		r.Post("/document/replace", s.handleReplaceDocument)
		r.Get("/outline", s.handleOutline)
		r.Get("/preview", s.handlePreview)
		r.Post("/assistant", s.handleAssistant)
		r.Get("/export/{format}", s.handleExport)
	})

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
