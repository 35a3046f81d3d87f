package httpx

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haukened/gone/internal/domain"
)

func TestRouterAPIUnderWebAssetsPrefix(t *testing.T) {
	id, _ := domain.NewID()
	h := New(stubService{
		createFn: func([]byte, time.Duration) (domain.SecretID, time.Time, error) {
			return id, time.Now(), nil
		},
	}, 0, nil)
	h.Assets = http.Dir(t.TempDir())

	req := httptest.NewRequest("POST", "/api/?ttl=1m", bytes.NewReader(nil))
	req.Header.Set("Content-Length", "0")
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if w.Code != 422 {
		t.Fatalf("expected nothing-to-insert 422 from the api surface, got %d", w.Code)
	}
}

func TestRouterOptionsPreflightRequiresCORS(t *testing.T) {
	h := New(stubService{}, 0, nil)
	req := httptest.NewRequest("OPTIONS", "/", nil)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 without cors configured, got %d", w.Code)
	}

	h.CORSOrigin = "https://example.com"
	w = httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Fatalf("cors header=%q", got)
	}
}

func TestRouterCORSHeaderOnEveryResponse(t *testing.T) {
	h := New(stubService{}, 0, nil)
	h.CORSOrigin = "*"
	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected cors header on ambient routes too, got %q", got)
	}
}

func TestRouterHealthAndReady(t *testing.T) {
	h := New(stubService{}, 0, func(context.Context) error { return nil })
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
	w = httptest.NewRecorder()
	h.Router().ServeHTTP(w, httptest.NewRequest("GET", "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("ready status=%d", w.Code)
	}
}
