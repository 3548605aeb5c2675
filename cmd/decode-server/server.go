package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"

	"github.com/emojidecoded/decoder/interpret"
)

type server struct {
	logger          *slog.Logger
	client          interpret.ModelClient
	catalog         atomic.Pointer[interpret.Catalog]
	timeout         time.Duration
	maxMessageChars int
	upgrader        websocket.Upgrader
}

func newServer(logger *slog.Logger, client interpret.ModelClient, catalog *interpret.Catalog, cfg Config) *server {
	s := &server{
		logger:          logger,
		client:          client,
		timeout:         time.Duration(cfg.TimeoutSeconds) * time.Second,
		maxMessageChars: cfg.MaxMessageChars,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1 << 12,
			WriteBufferSize: 1 << 12,
		},
	}
	if catalog == nil {
		catalog = interpret.NewCatalog(nil)
	}
	s.catalog.Store(catalog)
	return s
}

// swapCatalog atomically replaces the catalog; in-flight requests keep the
// immutable catalog they started with.
func (s *server) swapCatalog(c *interpret.Catalog) {
	if c != nil {
		s.catalog.Store(c)
	}
}

func (s *server) interpreter() *interpret.Interpreter {
	return interpret.New(s.client, s.catalog.Load())
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealthz)
	r.Post("/v1/interpret", s.handleInterpret)
	r.Get("/v1/interpret/stream", s.handleInterpretStream)

	return gzhttp.GzipHandler(r)
}

func (s *server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":              true,
		"catalog_entries": s.catalog.Load().Len(),
	})
}

type interpretRequest struct {
	Message  string `json:"message"`
	Platform string `json:"platform"`
	Context  string `json:"context"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// parse turns the wire request into a validated interpret.Request. The
// returned error message is safe to show to the caller.
func (s *server) parse(req interpretRequest) (interpret.Request, error) {
	if req.Message == "" {
		return interpret.Request{}, errors.New("message is required")
	}
	if s.maxMessageChars > 0 && len(req.Message) > s.maxMessageChars {
		return interpret.Request{}, errors.New("message is too long")
	}
	platform, err := interpret.ParsePlatform(req.Platform)
	if err != nil {
		return interpret.Request{}, err
	}
	relationship, err := interpret.ParseRelationship(req.Context)
	if err != nil {
		return interpret.Request{}, err
	}
	return interpret.Request{Message: req.Message, Platform: platform, Context: relationship}, nil
}

func (s *server) handleInterpret(w http.ResponseWriter, r *http.Request) {
	var body interpretRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	req, err := s.parse(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.interpreter().Interpret(ctx, req)
	if err != nil {
		s.writeInterpretError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeInterpretError maps pipeline failures onto HTTP statuses. Model
// responses that failed schema validation surface as a generic
// "interpretation failed" so malformed model data is never presented as a
// partial answer.
func (s *server) writeInterpretError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetReqID(r.Context())

	var verr *interpret.ValidationError
	switch {
	case errors.Is(err, interpret.ErrEmptyMessage),
		errors.Is(err, interpret.ErrUnknownPlatform),
		errors.Is(err, interpret.ErrUnknownRelationship):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, interpret.ErrMissingAPIKey):
		s.logger.Error("interpreter misconfigured", "request_id", requestID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "server misconfigured"})
	case errors.As(err, &verr):
		s.logger.Error("model response failed validation", "request_id", requestID, "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "interpretation failed"})
	default:
		s.logger.Error("model call failed", "request_id", requestID, "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "interpretation failed"})
	}
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
