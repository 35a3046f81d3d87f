// Package memory implements store.Backend entirely in process memory. It is
// the default backend when no on-disk store path is configured: secrets
// never survive a process restart and nothing touches the filesystem.
package memory

import (
	"time"

	"github.com/haukened/gone/internal/domain"
	"github.com/haukened/gone/internal/store"
)

// maxAttempts bounds the number of id-collision retries Put will perform
// before giving up. With 32 bytes of CSPRNG output a collision inside this
// bound is not expected to happen in practice.
const maxAttempts = 8

// entry is one tracked secret: its ciphertext and absolute expiry.
type entry struct {
	data      []byte
	expiresAt time.Time
}

// Store is an in-memory store.Backend. It is not safe for concurrent use by
// itself; facade.Store supplies the required locking.
type Store struct {
	entries map[domain.SecretID]entry
	size    int64
	maxSize int64
}

// New returns an empty in-memory store whose aggregate tracked size may
// never exceed maxSize bytes.
func New(maxSize int64) *Store {
	return &Store{
		entries: make(map[domain.SecretID]entry),
		maxSize: maxSize,
	}
}

// Refresh removes every entry whose expiry has already passed.
func (s *Store) Refresh(now time.Time) {
	for id, e := range s.entries {
		if !domain.Live(now, e.expiresAt) {
			s.size -= int64(len(e.data))
			delete(s.entries, id)
		}
	}
}

// Put stores data under a freshly generated id.
func (s *Store) Put(data []byte, expiresAt time.Time) (domain.SecretID, error) {
	if int64(len(data)) > store.MaxSecretBytes {
		return domain.SecretID{}, store.ErrTooLarge
	}
	if s.size+int64(len(data)) > s.maxSize {
		return domain.SecretID{}, store.ErrStoreFull
	}

	var id domain.SecretID
	for attempt := 0; ; attempt++ {
		candidate, err := domain.NewID()
		if err != nil {
			return domain.SecretID{}, store.ErrGeneric
		}
		if _, exists := s.entries[candidate]; !exists {
			id = candidate
			break
		}
		if attempt >= maxAttempts {
			return domain.SecretID{}, store.ErrGeneric
		}
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	s.entries[id] = entry{data: cp, expiresAt: expiresAt}
	s.size += int64(len(cp))
	return id, nil
}

// Get destructively reads the secret stored under id.
func (s *Store) Get(id domain.SecretID) ([]byte, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, store.ErrSecretNotFound
	}
	delete(s.entries, id)
	s.size -= int64(len(e.data))
	if !domain.Live(time.Now(), e.expiresAt) {
		return nil, store.ErrSecretNotFound
	}
	return e.data, nil
}

// Size reports the current aggregate tracked size in bytes.
func (s *Store) Size() int64 {
	return s.size
}
