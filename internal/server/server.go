// Package server implements the dagviz HTTP API. Graphs are stored in
// MongoDB, layouts are computed on upload, and rendered artifacts are
// cached between requests.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/dagviz/pkg/cache"
	"github.com/matzehuels/dagviz/pkg/errors"
	"github.com/matzehuels/dagviz/pkg/graph"
	"github.com/matzehuels/dagviz/pkg/layout"
	"github.com/matzehuels/dagviz/pkg/render/html"
	"github.com/matzehuels/dagviz/pkg/render/svg"
	"github.com/matzehuels/dagviz/pkg/store"
)

// renderTTL bounds how long rendered artifacts stay cached. Geometry is
// deterministic, so this only limits storage growth.
const renderTTL = 24 * time.Hour

// Server handles the dagviz HTTP API.
type Server struct {
	store  *store.Store
	cache  cache.Cache
	logger *log.Logger
}

// New creates a server backed by the given store and artifact cache.
func New(st *store.Store, ca cache.Cache, logger *log.Logger) *Server {
	return &Server{store: st, cache: ca, logger: logger}
}

// Router builds the HTTP route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/graphs", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Get("/svg", s.handleSVG)
			r.Get("/html", s.handleHTML)
		})
	})

	return r
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// createRequest is the POST /graphs payload.
type createRequest struct {
	Graph  graph.Graph   `json:"graph"`
	Config layout.Config `json:"config"`
}

// handleCreate stores a graph, computes its layout, and returns the record.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "decode request body: %v", err))
		return
	}

	geo, err := layout.Compute(&req.Graph, req.Config)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := s.store.Save(r.Context(), &req.Graph, geo.Config)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.SetGeometry(r.Context(), id, geo); err != nil {
		writeError(w, err)
		return
	}

	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, "svg", "image/svg+xml", func(rec *store.Record) ([]byte, error) {
		return svg.Render(*rec.Geometry, svg.WithInteractive()), nil
	})
}

func (s *Server) handleHTML(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, "html", "text/html; charset=utf-8", func(rec *store.Record) ([]byte, error) {
		return html.Render(*rec.Geometry, rec.Name)
	})
}

// serveArtifact renders a stored record to the requested format, consulting
// the artifact cache first.
func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, format, contentType string, render func(*store.Record) ([]byte, error)) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if rec.Geometry == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "graph %q has no computed layout", id))
		return
	}

	key := cache.Key("render", format, rec.ID, rec.UpdatedAt.UnixNano())
	if data, ok, err := s.cache.Get(r.Context(), key); err == nil && ok {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(data)
		return
	}

	data, err := render(rec)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.cache.Set(r.Context(), key, data, renderTTL); err != nil {
		s.logger.Debug("artifact cache write failed", "key", key, "err", err)
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidGraph, errors.ErrCodeInvalidNodeID, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeGraphNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}
