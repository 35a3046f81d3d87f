// Package facade wraps a single store.Backend behind a mutex, giving the
// rest of the application one serialized entry point regardless of which
// backend is configured. It also emulates the poisoned-mutex behavior of
// Rust's std::sync::Mutex: if a call panics while holding the lock, every
// subsequent call fails fast with store.ErrFailedToAcquireStore instead of
// silently operating on a backend that may be left in an inconsistent state.
package facade

import (
	"sync"
	"time"

	"github.com/haukened/gone/internal/domain"
	"github.com/haukened/gone/internal/store"
)

// Store serializes access to a store.Backend and detects poisoning.
type Store struct {
	mu       sync.Mutex
	backend  store.Backend
	poisoned bool
}

// New wraps backend behind a mutex.
func New(backend store.Backend) *Store {
	return &Store{backend: backend}
}

// withLock runs fn while holding the mutex, recovering from any panic and
// poisoning the store so future callers get ErrFailedToAcquireStore rather
// than racing a half-mutated backend.
func (s *Store) withLock(fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned {
		return store.ErrFailedToAcquireStore
	}
	defer func() {
		if r := recover(); r != nil {
			s.poisoned = true
			err = store.ErrFailedToAcquireStore
		}
	}()
	return fn()
}

// Put refreshes expired entries, then stores data under a new id.
func (s *Store) Put(data []byte, expiresAt time.Time) (domain.SecretID, error) {
	var id domain.SecretID
	err := s.withLock(func() error {
		s.backend.Refresh(time.Now())
		var putErr error
		id, putErr = s.backend.Put(data, expiresAt)
		return putErr
	})
	return id, err
}

// Get refreshes expired entries, then destructively reads id.
func (s *Store) Get(id domain.SecretID) ([]byte, error) {
	var data []byte
	err := s.withLock(func() error {
		s.backend.Refresh(time.Now())
		var getErr error
		data, getErr = s.backend.Get(id)
		return getErr
	})
	return data, err
}

// Refresh removes every entry whose expiry has passed, as of now.
func (s *Store) Refresh(now time.Time) error {
	return s.withLock(func() error {
		s.backend.Refresh(now)
		return nil
	})
}

// Size reports the backend's current aggregate tracked size in bytes.
func (s *Store) Size() (int64, error) {
	var size int64
	err := s.withLock(func() error {
		size = s.backend.Size()
		return nil
	})
	return size, err
}
