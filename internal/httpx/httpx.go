// Package httpx contains the HTTP delivery layer (net/http handlers) for the gone service.
// It maps HTTP requests to the application service while enforcing validation, size
// limits, security headers, and error translation. Handlers are split across files
// (create.go, consume.go, health.go, errors.go).
package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/haukened/gone/internal/domain"
)

// idTextLen is the fixed length of a SecretID's base64url text form.
const idTextLen = 43

// ServicePort abstracts the subset of app.Service used by the HTTP layer.
// It is satisfied by *app.Service in production and mocked in tests.
type ServicePort interface {
	CreateSecret(data []byte, ttl time.Duration) (id domain.SecretID, expiresAt time.Time, err error)
	Consume(idText string) ([]byte, error)
}

// Handler wires HTTP endpoints to the application service. It is safe for
// concurrent use. Zero-value is not valid for production; construct via New.
type Handler struct {
	Service    ServicePort
	MaxBody    int64                       // mirror service.MaxBytes (defense-in-depth, 0 disables)
	Readiness  func(context.Context) error // optional readiness probe
	Assets     http.FileSystem             // static web UI filesystem; nil disables the web UI
	CORSOrigin string                      // Access-Control-Allow-Origin value; empty disables CORS
	Logger     *slog.Logger
}

// New returns a configured Handler with no web UI and CORS disabled.
func New(svc ServicePort, maxBody int64, readiness func(context.Context) error) *Handler {
	return &Handler{Service: svc, MaxBody: maxBody, Readiness: readiness}
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Router constructs and returns an http.Handler with all routes mounted and
// middleware (correlation id, CORS, security headers) applied.
//
// When Assets is nil the secret API is mounted at the root ("/", "/:id").
// When Assets is set, static files are served at "/" and the secret API is
// namespaced under "/api/" so the two surfaces don't collide.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/readyz", h.handleReady)

	if h.Assets != nil {
		mux.HandleFunc("/api/", h.apiHandler("/api/"))
		mux.Handle("/", h.staticHandler())
	} else {
		mux.HandleFunc("/", h.apiHandler("/"))
	}

	var handler http.Handler = mux
	handler = h.cors(handler)
	handler = CorrelationIDMiddleware(handler)
	return h.secureHeaders(handler)
}

// apiHandler returns a handler that dispatches the secret API under the given
// path prefix: POST <prefix> creates a secret, GET <prefix><id> consumes one,
// and OPTIONS <prefix> answers a CORS preflight when CORS is enabled.
func (h *Handler) apiHandler(prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, prefix) {
			h.writeError(r.Context(), w, http.StatusNotFound, "not found")
			return
		}
		rest := r.URL.Path[len(prefix):]
		if rest == "" {
			switch r.Method {
			case http.MethodPost:
				h.handleCreate(w, r)
			case http.MethodOptions:
				h.handlePreflight(w, r)
			default:
				h.writeError(r.Context(), w, http.StatusMethodNotAllowed, "method not allowed")
			}
			return
		}
		if r.Method != http.MethodGet {
			h.writeError(r.Context(), w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if len(rest) != idTextLen {
			h.writeError(r.Context(), w, http.StatusBadRequest, "invalid id")
			return
		}
		h.handleConsume(w, r, rest)
	}
}

// handlePreflight answers an OPTIONS request. It only succeeds when CORS is
// configured; otherwise OPTIONS is treated like any other unsupported method.
func (h *Handler) handlePreflight(w http.ResponseWriter, r *http.Request) {
	if h.CORSOrigin == "" {
		h.writeError(r.Context(), w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(http.StatusOK)
}

// cors sets Access-Control-Allow-Origin on every response when configured.
func (h *Handler) cors(next http.Handler) http.Handler {
	if h.CORSOrigin == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.CORSOrigin)
		next.ServeHTTP(w, r)
	})
}

// staticHandler serves the embedded or operator-supplied web UI at "/".
func (h *Handler) staticHandler() http.Handler {
	fs := h.Assets
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=300")
		http.FileServer(fs).ServeHTTP(w, r)
	})
}

// secureHeaders middleware adds standard security & cache control headers.
func (h *Handler) secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		if ct := w.Header().Get("Content-Type"); ct == "" {
			w.Header().Set("Cache-Control", "no-store")
			w.Header().Set("Pragma", "no-cache")
		}
		w.Header().Set("Content-Security-Policy", "default-src 'none'; script-src 'self'; style-src 'self'; img-src 'self' data:; connect-src 'self'; font-src 'self'; frame-ancestors 'none'; base-uri 'none'; form-action 'self'")
		next.ServeHTTP(w, r)
	})
}
