// Package app contains the application orchestration layer for gone. It
// wires domain validation with the storage port without performing any I/O
// itself. The server never sees plaintext or key material: ciphertext
// arrives and leaves as an opaque byte slice.
package app

import (
	"errors"
	"time"

	"github.com/haukened/gone/internal/domain"
	"github.com/haukened/gone/internal/store"
)

// ErrSizeExceeded indicates the provided ciphertext is empty or exceeds the
// configured maximum.
var ErrSizeExceeded = errors.New("size exceeded")

// Service orchestrates secret creation and one-time consumption using the
// injected store and clock.
type Service struct {
	Store    SecretStore
	Clock    Clock
	MaxBytes int64
	Metrics  Metrics // optional metrics collector (may be nil)
}

// CreateSecret validates the ciphertext size, stores data under a fresh id
// with an expiry of now+ttl, and returns that id and its expiry.
func (s *Service) CreateSecret(data []byte, ttl time.Duration) (id domain.SecretID, expiresAt time.Time, err error) {
	if len(data) == 0 || int64(len(data)) > s.MaxBytes {
		return domain.SecretID{}, time.Time{}, ErrSizeExceeded
	}
	now := s.Clock.Now()
	expiresAt = now.Add(ttl)
	id, err = s.Store.Put(data, expiresAt)
	if err != nil {
		return domain.SecretID{}, time.Time{}, err
	}
	if s.Metrics != nil {
		s.Metrics.Inc("secrets_created_total", 1)
	}
	return id, expiresAt, nil
}

// Consume validates the provided id's text form then delegates to the store
// for one-time destructive retrieval.
func (s *Service) Consume(idText string) ([]byte, error) {
	id, err := domain.ParseID(idText)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	data, err := s.Store.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrSecretNotFound) {
			return nil, store.ErrSecretNotFound
		}
		return nil, err
	}
	if s.Metrics != nil {
		s.Metrics.Inc("secrets_consumed_total", 1)
	}
	return data, nil
}
