package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/cardsearch/internal/config"
	"github.com/san-kum/cardsearch/internal/deck"
	"github.com/san-kum/cardsearch/internal/logging"
	"github.com/san-kum/cardsearch/internal/search"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the search over HTTP. Requests share no simulation state:
// every request builds its own run.
type Server struct {
	cfg       *config.Config
	log       *slog.Logger
	policy    deck.Policy
	numbering search.Numbering
}

// New validates cfg and builds a server. A nil logger discards all records.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}
	policy, _ := cfg.GetPolicy()
	numbering, _ := cfg.GetNumbering()

	return &Server{
		cfg:       cfg,
		log:       logger,
		policy:    policy,
		numbering: numbering,
	}, nil
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log, s.cfg.Server.PreviewLimit))
	r.Use(recoverJSON(s.log))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/simulate", s.handleSimulate)
		r.Get("/presets", s.handlePresets)
		r.Get("/presets/{name}", s.handlePreset)
	})

	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
