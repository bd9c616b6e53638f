// Package server exposes the color converter over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/MeKo-Tech/colorsync/internal/colormodel"
	"github.com/MeKo-Tech/colorsync/internal/converter"
	"github.com/MeKo-Tech/colorsync/internal/history"
	"github.com/MeKo-Tech/colorsync/internal/swatch"
)

const (
	defaultHistoryLimit  = 50
	defaultEventInterval = 250 * time.Millisecond
	maxStateBody         = 4 << 10
)

// Config configures the HTTP server.
type Config struct {
	// Converter holds the shared color state. Required.
	Converter *converter.Converter
	// History is optional; /api/history answers 404 without it.
	History *history.Store
	// Static is served at / when set.
	Static fs.FS

	CacheControl   string
	PNGCompression string
	EventInterval  time.Duration
}

// Server serves the conversion API, swatch images and the demo page.
type Server struct {
	conv    *converter.Converter
	history *history.Store
	static  fs.FS
	logger  *slog.Logger
	cfg     Config
}

// StateRequest is the body of POST /api/state.
type StateRequest struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type errorResponse struct {
	Error string            `json:"error"`
	State *colormodel.Color `json:"state,omitempty"`
}

// New creates a server around cfg.Converter.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	if cfg.Converter == nil {
		return nil, errors.New("converter is required")
	}
	if cfg.CacheControl == "" {
		cfg.CacheControl = "public, max-age=86400"
	}
	if cfg.PNGCompression == "" {
		cfg.PNGCompression = "default"
	}
	if _, err := swatch.ParseCompression(cfg.PNGCompression); err != nil {
		return nil, err
	}
	if cfg.EventInterval <= 0 {
		cfg.EventInterval = defaultEventInterval
	}

	return &Server{
		conv:    cfg.Converter,
		history: cfg.History,
		static:  cfg.Static,
		logger:  logger,
		cfg:     cfg,
	}, nil
}

// Handler returns the routed handler with CORS applied to the API and images.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/api/convert", withCORS(http.HandlerFunc(s.handleConvert)))
	mux.Handle("/api/state", withCORS(http.HandlerFunc(s.handleState)))
	mux.Handle("/api/history", withCORS(http.HandlerFunc(s.handleHistory)))
	mux.Handle("/api/events", withCORS(http.HandlerFunc(s.handleEvents)))
	mux.Handle("/swatch/", withCORS(http.HandlerFunc(s.handleSwatch)))

	if s.static != nil {
		mux.Handle("/", http.FileServerFS(s.static))
	}

	return mux
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	q := r.URL.Query()
	value := q.Get("value")
	kind := converter.DetectKind(value)
	if k := q.Get("kind"); k != "" {
		var err error
		if kind, err = converter.ParseKind(k); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
	}

	c, err := converter.ConvertText(kind, value, colormodel.Default())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errorMessage(err), nil)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, http.StatusOK, s.conv.Current())

	case http.MethodPost:
		var req StateRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxStateBody)).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), nil)
			return
		}

		kind := converter.DetectKind(req.Value)
		if req.Kind != "" {
			var err error
			if kind, err = converter.ParseKind(req.Kind); err != nil {
				s.writeError(w, http.StatusBadRequest, err.Error(), nil)
				return
			}
		}

		c, err := s.conv.ApplyText(kind, req.Value)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, errorMessage(err), &c)
			return
		}
		s.writeJSON(w, http.StatusOK, c)

	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeError(w, http.StatusNotFound, "history disabled", nil)
		return
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", v), nil)
			return
		}
		limit = n
	}

	entries, err := s.history.Recent(limit)
	if err != nil {
		s.log().Error("failed to read history", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to read history", nil)
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

// handleEvents streams the current state as Server-Sent Events whenever it
// changes.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	ticker := time.NewTicker(s.cfg.EventInterval)
	defer ticker.Stop()

	last := s.conv.Current()
	s.sendEvent(w, flusher, last)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if cur := s.conv.Current(); cur != last {
				last = cur
				s.sendEvent(w, flusher, cur)
			}
		}
	}
}

func (s *Server) sendEvent(w http.ResponseWriter, flusher http.Flusher, c colormodel.Color) {
	data, err := json.Marshal(c)
	if err != nil {
		s.log().Error("failed to encode state", "error", err)
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log().Error("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string, state *colormodel.Color) {
	s.writeJSON(w, status, errorResponse{Error: msg, State: state})
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// errorMessage hides parser detail behind the generic format error.
func errorMessage(err error) string {
	if errors.Is(err, colormodel.ErrInvalidFormat) {
		return colormodel.ErrInvalidFormat.Error()
	}
	return err.Error()
}

func withCORS(next http.Handler) http.Handler {
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
