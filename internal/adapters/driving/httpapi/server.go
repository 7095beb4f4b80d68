// Package httpapi serves the cached site content over HTTP so the public
// site (or anything else) can read it while the content API is down.
// It is read-only: edits go through the CLI, TUI or MCP tools.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driving"
	"github.com/shubhraaj/sitecms/internal/logger"
	"github.com/shubhraaj/sitecms/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

// envelope matches the response shape of the remote content API.
type envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// Server exposes the local snapshot.
type Server struct {
	content driving.ContentService
	mounts  map[string]http.Handler
	router  chi.Router
	log     zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// Mount serves h under pattern next to the content routes.
func Mount(pattern string, h http.Handler) Option {
	return func(s *Server) { s.mounts[pattern] = h }
}

// NewServer creates a server over the content service.
func NewServer(content driving.ContentService, opts ...Option) *Server {
	s := &Server{
		content: content,
		mounts:  map[string]http.Handler{},
		log:     logger.WithComponent("httpapi"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/data", s.handleData)
		r.Get("/about", s.handleSection(domain.SectionAbout))
		r.Get("/testimonials", s.handleSection(domain.SectionTestimonials))
		r.Get("/contact", s.handleSection(domain.SectionContact))
		r.Get("/projects", s.handleSection(domain.SectionProjects))
		r.Get("/projects/{slug}", s.handleProject)
		r.Get("/status", s.handleStatus)
	})
	for pattern, h := range s.mounts {
		r.Mount(pattern, h)
	}
	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("serving content")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Data: s.content.Snapshot(r.Context())})
}

func (s *Server) handleSection(section domain.Section) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := s.content.Snapshot(r.Context())

		var data any
		switch section {
		case domain.SectionAbout:
			data = snap.About
		case domain.SectionProjects:
			data = snap.Projects
		case domain.SectionTestimonials:
			data = snap.Testimonials
		default:
			data = snap.Contact
		}
		writeJSON(w, http.StatusOK, envelope{Data: data})
	}
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	snap := s.content.Snapshot(r.Context())

	idx := snap.FindProject(slug)
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, envelope{Message: "Project not found"})
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: snap.Projects[idx]})
}

type sectionStatus struct {
	Section   string    `json:"section"`
	State     string    `json:"state"`
	LastError string    `json:"lastError,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	states := s.content.SyncStates()
	out := make([]sectionStatus, 0, len(states))
	for _, st := range states {
		out = append(out, sectionStatus{
			Section:   st.Section.String(),
			State:     st.State.String(),
			LastError: st.LastError,
			UpdatedAt: st.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, envelope{Data: out})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
