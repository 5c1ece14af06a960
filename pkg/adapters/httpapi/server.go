// Package httpapi exposes dialogue sessions over a small JSON HTTP API.
// Each session wraps one session.Controller; the handler owns the
// registry and serializes access per session.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"researchbot/internal/logging"
	"researchbot/pkg/domain"
	"researchbot/pkg/session"
)

// ControllerFactory builds a fresh controller for a new session.
type ControllerFactory func() (*session.Controller, error)

// Server routes session requests to their controllers.
type Server struct {
	factory ControllerFactory
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*session.Controller
}

// Option configures a Server.
type Option func(*Server)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer builds a Server that creates controllers via factory.
func NewServer(factory ControllerFactory, opts ...Option) *Server {
	s := &Server{
		factory:  factory,
		logger:   logging.NewNop(),
		sessions: map[string]*session.Controller{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/sessions", s.createSession)
	r.Get("/sessions/{id}", s.getSession)
	r.Post("/sessions/{id}/input", s.postInput)
	r.Delete("/sessions/{id}", s.deleteSession)
	return r
}

type createRequest struct {
	Topic string `json:"topic"`
}

type inputRequest struct {
	Value string `json:"value"`
}

type sessionResponse struct {
	ID      string               `json:"id"`
	Phase   session.Phase        `json:"phase"`
	Events  []session.Event      `json:"events,omitempty"`
	Pending *domain.InputRequest `json:"pending,omitempty"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.Topic == "" {
		http.Error(w, "topic is required", http.StatusBadRequest)
		return
	}

	ctrl, err := s.factory()
	if err != nil {
		s.logger.Error("create controller", "err", err)
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}

	events, err := ctrl.Start(r.Context(), body.Topic)
	if err != nil {
		s.logger.Error("start session", "err", err)
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = ctrl
	s.mu.Unlock()

	s.logger.Info("session created", "session_id", id, "thread", ctrl.Thread())
	writeJSON(w, http.StatusCreated, s.response(id, ctrl, events))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctrl, ok := s.lookup(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.response(id, ctrl, nil))
}

func (s *Server) postInput(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctrl, ok := s.lookup(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	var body inputRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	events, err := ctrl.Resume(r.Context(), body.Value)
	switch {
	case errors.Is(err, domain.ErrSessionEnded):
		http.Error(w, "session has ended", http.StatusConflict)
		return
	case errors.Is(err, domain.ErrNotAwaitingInput):
		http.Error(w, "session is not awaiting input", http.StatusConflict)
		return
	case err != nil:
		s.logger.Error("resume session", "session_id", id, "err", err)
		http.Error(w, "failed to resume session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, s.response(id, ctrl, events))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	s.logger.Info("session deleted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookup(id string) (*session.Controller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctrl, ok := s.sessions[id]
	return ctrl, ok
}

func (s *Server) response(id string, ctrl *session.Controller, events []session.Event) sessionResponse {
	resp := sessionResponse{ID: id, Phase: ctrl.Phase(), Events: events}
	if req, ok := ctrl.Pending(); ok {
		resp.Pending = &req
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "err", err)
	}
}
