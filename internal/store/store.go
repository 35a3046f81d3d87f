// Package store defines the Backend contract shared by the in-memory and
// on-disk secret stores, and the error taxonomy callers translate into HTTP
// responses. Concrete backends live in the memory and diskstore
// subpackages; facade wraps either one behind a single mutex for the
// httpx and service layers to call.
package store

import (
	"errors"
	"time"

	"github.com/haukened/gone/internal/domain"
)

// MaxSecretBytes is the per-secret ciphertext cap (110 MiB), independent of
// any backend-specific on-disk header overhead.
const MaxSecretBytes = 110 * 1024 * 1024

// MemoryAggregateMultiplier and DiskAggregateMultiplier scale MaxSecretBytes
// into each backend's aggregate capacity: 10x for in-memory, 30x on-disk.
const (
	MemoryAggregateMultiplier = 10
	DiskAggregateMultiplier   = 30
)

// Backend is implemented by the in-memory and on-disk secret stores. A
// Backend implementation is not required to be safe for concurrent use on
// its own: facade.Store supplies the mutual exclusion every caller outside
// this package relies on.
type Backend interface {
	// Refresh removes every tracked entry whose expiry has already passed,
	// as of now. It is called by the janitor on a timer and opportunistically
	// before Put and Get so aggregate accounting never counts dead weight.
	Refresh(now time.Time)

	// Put stores data under a freshly generated, collision-free id with the
	// given absolute expiry, and returns that id. It returns ErrTooLarge if
	// len(data) plus the backend's per-entry overhead (the 22-byte header on
	// disk, nothing in memory) exceeds MaxSecretBytes, or ErrStoreFull if
	// accepting data would exceed the backend's aggregate capacity.
	Put(data []byte, expiresAt time.Time) (domain.SecretID, error)

	// Get destructively reads the secret stored under id: on success the
	// entry is removed from the backend and will never be returned again.
	// It returns ErrSecretNotFound if id is unknown or its expiry has
	// already passed.
	Get(id domain.SecretID) ([]byte, error)

	// Size reports the current aggregate tracked size in bytes, including
	// entries not yet purged by Refresh.
	Size() int64
}

// Sentinel errors returned by Backend implementations and by facade.Store.
// httpx translates these into the status codes specified for the public
// API (see mapServiceError in httpx).
var (
	// ErrTooLarge means a Put payload exceeded MaxSecretBytes.
	ErrTooLarge = errors.New("secret exceeds maximum size")
	// ErrStoreFull means a Put would exceed the backend's aggregate capacity.
	ErrStoreFull = errors.New("store is full")
	// ErrSecretNotFound means Get found no live entry for the requested id.
	ErrSecretNotFound = errors.New("secret not found")
	// ErrGeneric wraps unexpected backend failures (I/O errors, and similar)
	// that callers should report without leaking internal detail.
	ErrGeneric = errors.New("store error")
	// ErrFailedToAcquireStore is returned by facade.Store when a previous
	// operation panicked while holding the lock, poisoning the store for
	// all subsequent callers.
	ErrFailedToAcquireStore = errors.New("failed to acquire store")
)
