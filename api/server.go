// Package api exposes a read-only status surface for the bridge: health,
// request-slot state, and the effective grant set.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/hostview-dev/hostview-sdk/bridge"
	"github.com/hostview-dev/hostview-sdk/domain/entities"
	domerrors "github.com/hostview-dev/hostview-sdk/domain/errors"
)

// BridgeState is the controller surface the API reads from.
type BridgeState interface {
	Snapshot(ctx context.Context) (bridge.Snapshot, error)
	Grants(ctx context.Context) (*entities.GrantSet, error)
}

// serverConfig holds configuration for the Server.
type serverConfig struct {
	logger  *slog.Logger
	timeout time.Duration
}

func defaultServerConfig() serverConfig {
	return serverConfig{
		logger:  slog.Default(),
		timeout: 5 * time.Second,
	}
}

// Option configures a Server instance.
type Option func(*serverConfig)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *serverConfig) {
		c.logger = l
	}
}

// WithTimeout bounds how long a request may wait on the bridge dispatcher.
func WithTimeout(d time.Duration) Option {
	return func(c *serverConfig) {
		c.timeout = d
	}
}

// Server serves the status API.
type Server struct {
	cfg    serverConfig
	state  BridgeState
	router *mux.Router
	log    *slog.Logger
}

// NewServer creates a Server over the given bridge state.
func NewServer(state BridgeState, opts ...Option) *Server {
	cfg := defaultServerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Server{
		cfg:   cfg,
		state: state,
		log:   cfg.logger.With("component", "api"),
	}
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/v1/grants", s.handleGrants).Methods(http.MethodGet)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.timeout)
	defer cancel()

	snap, err := s.state.Snapshot(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleGrants(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.timeout)
	defer cancel()

	grants, err := s.state.Grants(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, grants)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("response encoding failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	detail := domerrors.ToErrorDetail(err)
	s.log.Warn("request failed", "type", detail.Type, "err", err)
	s.writeJSON(w, http.StatusServiceUnavailable, detail)
}
