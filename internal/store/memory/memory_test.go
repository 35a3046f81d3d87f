package memory

import (
	"testing"
	"time"

	"github.com/haukened/gone/internal/store"
)

func TestPutGetRoundTrip(t *testing.T) {
	s := New(1 << 20)
	payload := []byte("hello secret")
	id, err := s.Put(payload, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("got %q want %q", got, payload)
	}
}

func TestGetIsDestructive(t *testing.T) {
	s := New(1 << 20)
	id, err := s.Put([]byte("once"), time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := s.Get(id); err != nil {
		t.Fatalf("first Get: %v", err)
	}
	if _, err := s.Get(id); err != store.ErrSecretNotFound {
		t.Fatalf("second Get: got %v want ErrSecretNotFound", err)
	}
}

func TestGetUnknownID(t *testing.T) {
	s := New(1 << 20)
	var id [32]byte
	if _, err := s.Get(id); err != store.ErrSecretNotFound {
		t.Fatalf("got %v want ErrSecretNotFound", err)
	}
}

func TestGetExpired(t *testing.T) {
	s := New(1 << 20)
	id, err := s.Put([]byte("stale"), time.Now().Add(-time.Second))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := s.Get(id); err != store.ErrSecretNotFound {
		t.Fatalf("got %v want ErrSecretNotFound", err)
	}
}

func TestPutTooLarge(t *testing.T) {
	s := New(1 << 20)
	big := make([]byte, store.MaxSecretBytes+1)
	if _, err := s.Put(big, time.Now().Add(time.Minute)); err != store.ErrTooLarge {
		t.Fatalf("got %v want ErrTooLarge", err)
	}
}

func TestPutStoreFull(t *testing.T) {
	s := New(10)
	if _, err := s.Put(make([]byte, 5), time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if _, err := s.Put(make([]byte, 6), time.Now().Add(time.Minute)); err != store.ErrStoreFull {
		t.Fatalf("got %v want ErrStoreFull", err)
	}
}

func TestRefreshRemovesExpired(t *testing.T) {
	s := New(1 << 20)
	id, err := s.Put([]byte("x"), time.Now().Add(time.Millisecond))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	s.Refresh(time.Now().Add(time.Second))
	if s.Size() != 0 {
		t.Fatalf("expected size 0 after refresh, got %d", s.Size())
	}
	if _, err := s.Get(id); err != store.ErrSecretNotFound {
		t.Fatalf("got %v want ErrSecretNotFound", err)
	}
}

func TestSizeTracksLiveEntries(t *testing.T) {
	s := New(1 << 20)
	if _, err := s.Put([]byte("abcde"), time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if s.Size() != 5 {
		t.Fatalf("got size %d want 5", s.Size())
	}
}
