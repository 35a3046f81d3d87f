// Package app defines the application layer "ports" (interfaces) that the
// core use-cases of gone depend upon. It follows a hexagonal (ports &
// adapters) design: this package declares what the core needs, while
// adapter packages (facade over memory/diskstore, janitor, httpx) provide
// or consume concrete implementations. No I/O, logging, or wire-format
// concerns belong here.
package app

import (
	"time"

	"github.com/haukened/gone/internal/domain"
)

// Clock abstracts time to enable deterministic testing of TTL / expiry logic.
type Clock interface {
	// Now returns the current wall-clock time.
	Now() time.Time
}

// SecretStore is the storage port for secrets: an opaque-ciphertext,
// single-read repository with per-entry TTL. The server never inspects the
// bytes it stores — everything a recipient needs to decrypt lives in the
// client-held key, not in server-side metadata.
type SecretStore interface {
	// Put stores data under a freshly generated id with the given absolute
	// expiry, and returns that id.
	Put(data []byte, expiresAt time.Time) (domain.SecretID, error)

	// Get destructively reads the secret stored under id.
	Get(id domain.SecretID) ([]byte, error)
}

// Metrics defines the minimal counter interface the Service depends on.
// Implemented by metrics.Manager without importing that package here to
// avoid a dependency cycle.
type Metrics interface {
	Inc(name string, delta int64)
}
