package httpx

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haukened/gone/internal/app"
	"github.com/haukened/gone/internal/domain"
	"github.com/haukened/gone/internal/store"
)

type stubService struct {
	createFn  func(data []byte, ttl time.Duration) (domain.SecretID, time.Time, error)
	consumeFn func(idText string) ([]byte, error)
}

func (s stubService) CreateSecret(data []byte, ttl time.Duration) (domain.SecretID, time.Time, error) {
	return s.createFn(data, ttl)
}

func (s stubService) Consume(idText string) ([]byte, error) {
	return s.consumeFn(idText)
}

func TestHandleCreateSuccess(t *testing.T) {
	var gotData []byte
	var gotTTL time.Duration
	id, _ := domain.NewID()
	h := New(stubService{createFn: func(data []byte, ttl time.Duration) (domain.SecretID, time.Time, error) {
		gotData = data
		gotTTL = ttl
		return id, time.Now().Add(ttl), nil
	}}, 0, nil)

	req := httptest.NewRequest("POST", "/?ttl=1m", bytes.NewReader([]byte("cipher")))
	req.Header.Set("Content-Length", "6")
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)

	if w.Code != 201 {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w.Body.String() != id.String() {
		t.Fatalf("body=%q want=%q", w.Body.String(), id.String())
	}
	if !bytes.Equal(gotData, []byte("cipher")) {
		t.Fatalf("data=%q", gotData)
	}
	if gotTTL != time.Minute {
		t.Fatalf("ttl=%v", gotTTL)
	}
}

func TestHandleCreateMissingContentLength(t *testing.T) {
	h := New(stubService{}, 0, nil)
	req := httptest.NewRequest("POST", "/?ttl=1m", bytes.NewReader([]byte("x")))
	req.ContentLength = -1
	req.Header.Del("Content-Length")
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if w.Code != 411 {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestHandleCreateEmptyBody(t *testing.T) {
	h := New(stubService{}, 0, nil)
	req := httptest.NewRequest("POST", "/?ttl=1m", bytes.NewReader(nil))
	req.Header.Set("Content-Length", "0")
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if w.Code != 422 {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestHandleCreateMissingTTL(t *testing.T) {
	h := New(stubService{}, 0, nil)
	req := httptest.NewRequest("POST", "/", bytes.NewReader([]byte("x")))
	req.Header.Set("Content-Length", "1")
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if w.Code != 400 {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestHandleCreateTooLarge(t *testing.T) {
	h := New(stubService{}, 4, nil)
	req := httptest.NewRequest("POST", "/?ttl=1m", bytes.NewReader([]byte("hello")))
	req.Header.Set("Content-Length", "5")
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if w.Code != 413 {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestHandleCreateStoreFull(t *testing.T) {
	h := New(stubService{createFn: func([]byte, time.Duration) (domain.SecretID, time.Time, error) {
		return domain.SecretID{}, time.Time{}, store.ErrStoreFull
	}}, 0, nil)
	req := httptest.NewRequest("POST", "/?ttl=1m", bytes.NewReader([]byte("x")))
	req.Header.Set("Content-Length", "1")
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if w.Code != 409 {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestHandleCreateMethodNotAllowedOnSubPath(t *testing.T) {
	h := New(stubService{}, 0, nil)
	req := httptest.NewRequest("POST", "/my_key?ttl=1m", bytes.NewReader([]byte("x")))
	req.Header.Set("Content-Length", "1")
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if w.Code != 405 {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestHandleCreateSizeExceeded(t *testing.T) {
	h := New(stubService{createFn: func([]byte, time.Duration) (domain.SecretID, time.Time, error) {
		return domain.SecretID{}, time.Time{}, app.ErrSizeExceeded
	}}, 0, nil)
	req := httptest.NewRequest("POST", "/?ttl=1m", bytes.NewReader([]byte("x")))
	req.Header.Set("Content-Length", "1")
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if w.Code != 413 {
		t.Fatalf("status=%d", w.Code)
	}
}
