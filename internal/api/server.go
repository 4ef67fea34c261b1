// Package api exposes the Vexed engine over HTTP: stateless board
// operations, server-side play sessions and a websocket that streams
// settlement frames.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/vexed/internal/config"
	"github.com/vovakirdan/vexed/internal/games/vexed/solver"
)

// Options configures a Server.
type Options struct {
	Address    string
	Pacing     config.Pacing
	Solver     solver.Options
	MaxLevel   int
	SessionTTL time.Duration
	Logger     *log.Logger
	Clock      func() time.Time
}

// OptionsFromConfig maps a loaded configuration to server options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Address:    cfg.Server.HTTPAddress,
		Pacing:     cfg.Animation.Pacing(),
		Solver:     solver.Options{MaxNodes: cfg.Solver.MaxNodes, MaxDepth: cfg.Solver.MaxDepth},
		MaxLevel:   cfg.Campaign.MaxLevel,
		SessionTTL: cfg.Server.IdleTimeout(),
	}
}

// Server is the HTTP API.
type Server struct {
	opts     Options
	router   chi.Router
	server   *http.Server
	logger   *log.Logger
	sessions *sessionStore
}

// New builds the router. Call ListenAndServe to accept connections, or use
// Handler directly.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	s := &Server{
		opts:     opts,
		logger:   opts.Logger,
		sessions: newSessionStore(opts.SessionTTL, opts.Clock),
	}

	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.Recoverer)
	r.Use(AccessLog(s.logger))

	r.Get("/v1/ws", s.handleWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(Compression)

		r.Post("/v1/parse", s.handleParse)
		r.Post("/v1/settle", s.handleSettle)
		r.Post("/v1/move", s.handleMove)
		r.Post("/v1/solve", s.handleSolve)

		r.Get("/v1/packs", s.handleListPacks)
		r.Get("/v1/packs/{pack}/levels/{n}", s.handleGetLevel)

		r.Route("/v1/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Get("/{id}", s.handleGetSession)
			r.Delete("/{id}", s.handleDeleteSession)
			r.Post("/{id}/move", s.handleSessionMove)
			r.Post("/{id}/{action}", s.handleSessionAction)
		})
	})

	s.router = r
	s.server = &http.Server{
		Addr:         opts.Address,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting HTTP API", "address", s.opts.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // The client is gone if this fails
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decode reads a JSON body, rejecting unknown fields.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("malformed JSON body: " + err.Error())
	}
	return nil
}
