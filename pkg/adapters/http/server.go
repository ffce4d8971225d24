package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/aretw0/ribs"
	"github.com/aretw0/ribs/internal/logging"
	"github.com/aretw0/ribs/pkg/backstack"
	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/loop"
	"github.com/aretw0/ribs/pkg/observability"
	"github.com/go-chi/chi/v5"
)

// Server exposes a router hosted on a loop. Every router call is posted to the loop
// with loop.Do, so handlers never touch the pool from a request goroutine.
type Server struct {
	host    *loop.Loop
	router  *ribs.Router
	metrics *observability.Metrics
	logger  *slog.Logger
	Streams *StreamManager

	// last is the pool as of the previous Sync. Only the loop reads or writes it.
	last *domain.WorkingState
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics serves the collectors on GET /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server for a started router.
func NewServer(host *loop.Loop, router *ribs.Router, opts ...Option) *Server {
	s := &Server{
		host:    host,
		router:  router,
		logger:  logging.NewNop(),
		Streams: NewStreamManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates the HTTP handler of a new Server.
func NewHandler(host *loop.Loop, router *ribs.Router, opts ...Option) http.Handler {
	return NewServer(host, router, opts...).Handler()
}

// Handler routes the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/state", s.GetState)
	r.Get("/events", s.SubscribeEvents)
	r.Post("/navigate", s.Navigate)
	r.Post("/sleep", s.Sleep)
	r.Post("/wake", s.WakeUp)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

// Element is one pool entry.
type Element struct {
	Key           domain.RoutingKey      `json:"key"`
	Configuration domain.Configuration   `json:"configuration"`
	State         domain.ActivationState `json:"state"`
	Resolved      bool                   `json:"resolved"`
	Pending       string                 `json:"pending,omitempty"`
}

// StateResponse is the router as seen from the loop.
type StateResponse struct {
	ActivationLevel domain.ActivationState `json:"activation_level"`
	BackStack       []string               `json:"back_stack"`
	Elements        []Element              `json:"elements"`
	Ongoing         int                    `json:"ongoing_transitions"`
}

// NavigateRequest names a back stack operation. Pop and pop_overlay take no
// configuration.
type NavigateRequest struct {
	Op            string               `json:"op"`
	Configuration domain.Configuration `json:"configuration"`
}

// NavigateResponse reports whether the operation applied and the resulting state.
type NavigateResponse struct {
	Applied bool          `json:"applied"`
	State   StateResponse `json:"state"`
}

// GetState handles the GET /state request.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	var resp StateResponse
	err := s.host.Do(r.Context(), func() error {
		resp = s.snapshot()
		return nil
	})
	if err != nil {
		s.fail(w, "GetState", err)
		return
	}
	s.respond(w, "GetState", resp)
}

// Navigate handles the POST /navigate request.
func (s *Server) Navigate(w http.ResponseWriter, r *http.Request) {
	var body NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Navigate: Invalid request body", "err", err)
		return
	}

	op, err := backstack.Parse(body.Op, body.Configuration)
	if err != nil {
		s.fail(w, "Navigate", err)
		return
	}

	var resp NavigateResponse
	err = s.host.Do(r.Context(), func() error {
		applied, err := s.router.Accept(op)
		if err != nil {
			return err
		}
		s.Sync()
		resp = NavigateResponse{Applied: applied, State: s.snapshot()}
		return nil
	})
	if err != nil {
		s.fail(w, "Navigate", err)
		return
	}

	s.logger.Info("Navigate", "op", op, "applied", resp.Applied)
	s.respond(w, "Navigate", resp)
}

// Sleep handles the POST /sleep request.
func (s *Server) Sleep(w http.ResponseWriter, r *http.Request) {
	s.global(w, r, "Sleep", s.router.Sleep)
}

// WakeUp handles the POST /wake request.
func (s *Server) WakeUp(w http.ResponseWriter, r *http.Request) {
	s.global(w, r, "WakeUp", s.router.WakeUp)
}

func (s *Server) global(w http.ResponseWriter, r *http.Request, name string, fn func() error) {
	var resp StateResponse
	err := s.host.Do(r.Context(), func() error {
		if err := fn(); err != nil {
			return err
		}
		s.Sync()
		resp = s.snapshot()
		return nil
	})
	if err != nil {
		s.fail(w, name, err)
		return
	}
	s.logger.Info(name, "activation_level", resp.ActivationLevel)
	s.respond(w, name, resp)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, "GetHealth", map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.respond(w, "GetInfo", map[string]string{
		"app":     "ribs-http",
		"version": strings.TrimSpace(ribs.Version),
	})
}

// Sync broadcasts the pool changes since the previous call to /events subscribers.
// It must run on the loop. Hosts call it once per frame so that transitions finishing
// between requests are reported too.
func (s *Server) Sync() {
	now := s.router.State()
	diff := domain.Diff(s.last, &now)
	s.last = &now
	if diff == nil {
		return
	}

	bytes, err := json.Marshal(diff)
	if err != nil {
		s.logger.Error("Sync: Diff encode failed", "err", err)
		return
	}
	s.Streams.Broadcast(string(bytes))
}

// snapshot must run on the loop.
func (s *Server) snapshot() StateResponse {
	state := s.router.State()
	resp := StateResponse{
		ActivationLevel: state.ActivationLevel,
		BackStack:       s.router.BackStack().Names(),
		Elements:        make([]Element, 0, len(state.Pool)),
		Ongoing:         len(state.OngoingTransitions),
	}
	for key, element := range state.Pool {
		e := Element{
			Key:           key,
			Configuration: element.Routing.Configuration,
			State:         element.ActivationState,
			Resolved:      element.IsResolved(),
		}
		switch {
		case state.IsPendingRemoval(key):
			e.Pending = "removal"
		case state.IsPendingDeactivate(key):
			e.Pending = "deactivate"
		}
		resp.Elements = append(resp.Elements, e)
	}
	slices.SortFunc(resp.Elements, func(a, b Element) int {
		return strings.Compare(string(a.Key), string(b.Key))
	})
	return resp
}

func (s *Server) respond(w http.ResponseWriter, name string, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(name+" response encode failed", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, name string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidOperation):
		status = http.StatusBadRequest
	case errors.Is(err, ribs.ErrNotStarted), errors.Is(err, domain.ErrPoolDisposed):
		status = http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	http.Error(w, fmt.Sprintf("%s error: %v", name, err), status)
	if status >= http.StatusInternalServerError {
		s.logger.Error(name+" failed", "err", err)
		return
	}
	s.logger.Warn(name+" rejected", "err", err)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
