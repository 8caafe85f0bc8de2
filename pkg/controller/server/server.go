package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m-mizutani/gdstation/pkg/domain/interfaces"
	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/utils/errutil"
	"github.com/m-mizutani/gdstation/pkg/utils/logging"
)

const DefaultMaxBodySize = 1 << 20

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.Default().Error("fail to encode response", slog.Any("error", err))
		code, body = http.StatusInternalServerError, []byte(`{"error":"failed to encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, body)
}

type config struct {
	apiKey      types.ServerAPIKey
	maxBodySize int64
}

type Option func(*config)

// WithAPIKey requires the key in the X-API-Key header of finding requests.
func WithAPIKey(key types.ServerAPIKey) Option {
	return func(cfg *config) {
		cfg.apiKey = key
	}
}

func WithMaxBodySize(size int64) Option {
	return func(cfg *config) {
		cfg.maxBodySize = size
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range options {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/finding", func(r chi.Router) {
		if cfg.apiKey != "" {
			r.Use(requireAPIKey(cfg.apiKey))
		}
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			handleFinding(w, r, uc, cfg.maxBodySize)
		})
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

func requireAPIKey(key types.ServerAPIKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			given := r.Header.Get("X-API-Key")
			if subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid API key"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func handleFinding(w http.ResponseWriter, r *http.Request, uc interfaces.UseCase, maxBodySize int64) {
	finding, err := model.DecodeFinding(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx := logging.DetachContext(r.Context())

	report, err := uc.HandleFinding(ctx, finding)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

var statusMap = []struct {
	err  error
	code int
}{
	{types.ErrMalformedInput, http.StatusBadRequest},
	{types.ErrUnknownScope, http.StatusForbidden},
	{types.ErrInsufficientPermission, http.StatusForbidden},
	{types.ErrScopeMismatch, http.StatusConflict},
	{types.ErrLookup, http.StatusBadGateway},
	{types.ErrSubmit, http.StatusBadGateway},
	{types.ErrUpdate, http.StatusBadGateway},
}

// StatusCode maps a finding handling error to the HTTP status returned.
func StatusCode(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	for _, s := range statusMap {
		if errors.Is(err, s.err) {
			return s.code
		}
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}

	if code >= http.StatusInternalServerError {
		errutil.HandleError(r.Context(), "failed to handle finding", err)
	} else {
		logging.From(r.Context()).Warn("finding rejected", slog.Int("status", code), slog.Any("error", err))
	}

	writeJSON(w, code, map[string]string{"error": msg})
}
