package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	applog "github.com/nao1215/compcheck/internal/log"
	"github.com/nao1215/compcheck/internal/model"
)

// Paths served by NewMux.
const (
	CheckPath  = "/api/check"
	HealthPath = "/healthz"
)

// allowedMethods is the value of Access-Control-Allow-Methods and Allow.
const allowedMethods = "GET, OPTIONS"

// Checker runs a compression check for a raw target.
// *pipeline.Pipeline implements it.
type Checker interface {
	Check(ctx context.Context, rawInput string) (*model.CompressionReport, error)
}

// Handler serves the check endpoint.
type Handler struct {
	checker Checker
	logger  *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler creates the handler of the check endpoint.
func NewHandler(checker Checker, opts ...Option) *Handler {
	h := &Handler{
		checker: checker,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w.Header())

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodGet:
	default:
		w.Header().Set("Allow", allowedMethods)
		h.write(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error:   "Method not allowed.",
			Details: fmt.Sprintf("The %s method is not supported.", r.Method),
		})
		return
	}

	target := r.URL.Query().Get("url")
	report, err := h.checker.Check(r.Context(), target)
	if err != nil {
		status, body := errorResponse(err)
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		h.logger.Log(r.Context(), level, "check failed",
			"target", target,
			"status", status,
			"error", err,
		)
		h.write(w, status, body)
		return
	}

	h.logger.Debug("check completed",
		"url", report.URL,
		"upstream_status", report.Status,
		"compression", report.CompressionType,
		"compressed_size", report.CompressedSize,
		"uncompressed_size", report.UncompressedSize,
		applog.HeaderAttrs("headers", report.Headers),
	)
	h.write(w, http.StatusOK, report)
}

func (h *Handler) write(w http.ResponseWriter, status int, v any) {
	if err := writeJSON(w, status, v); err != nil {
		h.logger.Warn("failed to write response", "error", err)
	}
}

// setCORSHeaders sets the static CORS headers of the check endpoint.
func setCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", allowedMethods)
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

// healthHandler answers liveness probes.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}) //nolint:errcheck
}

// NewMux routes the check endpoint and the liveness probe, wrapped with
// request ID and access log middleware.
func NewMux(checkHandler http.Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(CheckPath, checkHandler)
	mux.HandleFunc("GET "+HealthPath, healthHandler)

	return requestID(accessLog(logger, mux))
}
